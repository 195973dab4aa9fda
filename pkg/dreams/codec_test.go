package dreams

import (
	"encoding/json"
	"testing"
)

func TestEncodeDecodeTagsRoundTrip(t *testing.T) {
	tags := []string{"adventure", "class reunion", "déjà vu", "freedom"}

	blob := EncodeTags(tags)
	decoded := DecodeTags(blob)

	if len(decoded) != len(tags) {
		t.Fatalf("Expected %d tags after round trip, got %d", len(tags), len(decoded))
	}
	for i, tag := range tags {
		if decoded[i] != tag {
			t.Errorf("Tag %d: expected %q, got %q", i, tag, decoded[i])
		}
	}
}

func TestEncodeTagsEmpty(t *testing.T) {
	if blob := EncodeTags(nil); blob != "[]" {
		t.Errorf("Expected nil tags to encode as [], got %q", blob)
	}
	if blob := EncodeTags([]string{}); blob != "[]" {
		t.Errorf("Expected empty tags to encode as [], got %q", blob)
	}
}

func TestDecodeTagsMalformed(t *testing.T) {
	for _, blob := range []string{"not json at all", "{", `{"a":1}`, "", "null"} {
		decoded := DecodeTags(blob)
		if decoded == nil {
			t.Errorf("DecodeTags(%q) returned nil, want empty slice", blob)
		}
		if len(decoded) != 0 {
			t.Errorf("DecodeTags(%q) = %v, want empty slice", blob, decoded)
		}
	}
}

func TestParseMood(t *testing.T) {
	known := map[string]Mood{
		"happy":    MoodHappy,
		"sad":      MoodSad,
		"scary":    MoodScary,
		"romantic": MoodRomantic,
		"weird":    MoodWeird,
		"neutral":  MoodNeutral,
	}
	for token, want := range known {
		if got := ParseMood(token); got != want {
			t.Errorf("ParseMood(%q) = %q, want %q", token, got, want)
		}
	}

	// Unknown tokens degrade to neutral rather than erroring.
	for _, token := range []string{"", "ecstatic", "HAPPY", "Happy "} {
		if got := ParseMood(token); got != MoodNeutral {
			t.Errorf("ParseMood(%q) = %q, want neutral", token, got)
		}
	}
}

func TestMoodUnmarshalLenient(t *testing.T) {
	var m Mood
	if err := json.Unmarshal([]byte(`"confused"`), &m); err != nil {
		t.Fatalf("Unmarshal of unknown mood token errored: %v", err)
	}
	if m != MoodNeutral {
		t.Errorf("Unknown mood token decoded as %q, want neutral", m)
	}

	if err := json.Unmarshal([]byte(`"scary"`), &m); err != nil {
		t.Fatalf("Unmarshal of known mood token errored: %v", err)
	}
	if m != MoodScary {
		t.Errorf("Known mood token decoded as %q, want scary", m)
	}

	// Non-string JSON is still a real error.
	if err := json.Unmarshal([]byte(`42`), &m); err == nil {
		t.Error("Expected error unmarshaling non-string mood, got nil")
	}
}
