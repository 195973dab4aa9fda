package dreamlog

// Version is the current dreamlog release.
const Version = "0.1.0"
