package dreams

import "encoding/json"

// Mood is the closed set of emotional categories a dream can carry.
// The zero-ish fallback for anything unrecognized is MoodNeutral.
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodScary    Mood = "scary"
	MoodRomantic Mood = "romantic"
	MoodWeird    Mood = "weird"
	MoodNeutral  Mood = "neutral"
)

// ParseMood maps a stored or wire token to a Mood. Unknown tokens degrade to
// MoodNeutral rather than erroring, so one bad value never blocks a read.
func ParseMood(s string) Mood {
	switch Mood(s) {
	case MoodHappy, MoodSad, MoodScary, MoodRomantic, MoodWeird, MoodNeutral:
		return Mood(s)
	default:
		return MoodNeutral
	}
}

// String returns the lowercase token used both on the wire and in the mood column.
func (m Mood) String() string {
	return string(m)
}

// UnmarshalJSON decodes a mood token leniently: any string is accepted and
// unknown tokens become MoodNeutral. Non-string JSON is still an error.
func (m *Mood) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*m = ParseMood(s)
	return nil
}

// Dream is the single persisted journal record. Wire names are camelCase
// (the convention the UI process speaks); column names are snake_case.
type Dream struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	OccurredAt string   `json:"occurredAt"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	Mood       Mood     `json:"mood"`
	Intensity  int      `json:"intensity"`
	Lucid      bool     `json:"lucid"`
	CreatedAt  string   `json:"createdAt"`
	UpdatedAt  string   `json:"updatedAt"`
}
