package mcp

import "testing"

func assertTags(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected tags %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tag %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestParseTagsArgument(t *testing.T) {
	// Absent or empty argument means no tag constraint.
	for _, arg := range []any{nil, "", "   "} {
		tags, err := parseTagsArgument(arg)
		if err != nil {
			t.Errorf("parseTagsArgument(%v) errored: %v", arg, err)
		}
		if len(tags) != 0 {
			t.Errorf("parseTagsArgument(%v) = %v, want none", arg, tags)
		}
	}

	// Comma-separated form, whitespace trimmed.
	tags, err := parseTagsArgument("night, flying ,  water")
	if err != nil {
		t.Fatalf("Comma form errored: %v", err)
	}
	assertTags(t, tags, "night", "flying", "water")

	// JSON array string form carries commas and quotes through verbatim.
	tags, err = parseTagsArgument(`["comma, tag", "say \"hi\"", "<lucid>"]`)
	if err != nil {
		t.Fatalf("JSON array form errored: %v", err)
	}
	assertTags(t, tags, "comma, tag", `say "hi"`, "<lucid>")

	// Native array, as a client sending real JSON arrays produces.
	tags, err = parseTagsArgument([]any{"one", "two, three"})
	if err != nil {
		t.Fatalf("Native array form errored: %v", err)
	}
	assertTags(t, tags, "one", "two, three")
}

func TestParseTagsArgumentRejectsMalformed(t *testing.T) {
	for _, arg := range []any{`["unterminated`, `[1, 2]`, []any{"ok", 42}, 7} {
		if _, err := parseTagsArgument(arg); err == nil {
			t.Errorf("parseTagsArgument(%v) returned no error, want one", arg)
		}
	}
}
