package dreams

import (
	"encoding/json"
	"strings"
)

// Filter is the optional filter bundle for ListDreams. Zero-valued fields
// impose no constraint; all present clauses combine with AND.
type Filter struct {
	// Query matches title or content by case-insensitive substring.
	Query string `json:"query,omitempty"`
	// Mood matches the stored mood token exactly.
	Mood string `json:"mood,omitempty"`
	// Tags lists tags the dream must all carry.
	Tags []string `json:"tags,omitempty"`
	// DateFrom is an inclusive lower bound on occurred_at (ISO-8601).
	DateFrom string `json:"dateFrom,omitempty"`
	// DateTo is an inclusive upper bound on occurred_at (ISO-8601).
	DateTo string `json:"dateTo,omitempty"`
	// Day matches the calendar-day portion of occurred_at (YYYY-MM-DD).
	Day string `json:"day,omitempty"`
}

// clause is one rendered predicate: a SQL fragment plus the arguments it
// binds, kept together so placeholders and args can never drift apart.
type clause struct {
	expr string
	args []any
}

// clauses renders each present filter field into a predicate. The tag
// predicates are only a LIKE pre-filter against the serialized blob;
// matchesTags re-checks exact membership on the decoded list.
func (f Filter) clauses() []clause {
	var cs []clause

	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		cs = append(cs, clause{"(title LIKE ? OR content LIKE ?)", []any{pattern, pattern}})
	}
	if f.Mood != "" {
		cs = append(cs, clause{"mood = ?", []any{f.Mood}})
	}
	for _, tag := range f.Tags {
		cs = append(cs, clause{"tags LIKE ?", []any{tagLikePattern(tag)}})
	}
	if f.DateFrom != "" {
		cs = append(cs, clause{"occurred_at >= ?", []any{f.DateFrom}})
	}
	if f.DateTo != "" {
		cs = append(cs, clause{"occurred_at <= ?", []any{f.DateTo}})
	}
	if f.Day != "" {
		cs = append(cs, clause{"DATE(occurred_at) = ?", []any{f.Day}})
	}

	return cs
}

// tagLikePattern builds the LIKE pattern for one required tag from its
// JSON-encoded form, surrounding quotes included, so the pre-filter sees the
// tag exactly as EncodeTags stores it in the blob (escapes like < and
// \" and all). A wider match from % or _ inside the tag is fine; the
// pattern must never be narrower than the stored encoding.
func tagLikePattern(tag string) string {
	enc, err := json.Marshal(tag)
	if err != nil {
		enc = []byte(`"` + tag + `"`)
	}
	return "%" + string(enc) + "%"
}

// buildQuery renders the full parameterized SELECT for this filter with an
// argument list in placeholder order. Results come back most recent
// dream-time first.
func (f Filter) buildQuery() (string, []any) {
	var sb strings.Builder
	sb.WriteString(selectDreamColumns)
	sb.WriteString(" FROM dreams")

	var args []any
	for i, c := range f.clauses() {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString(c.expr)
		args = append(args, c.args...)
	}

	sb.WriteString(" ORDER BY occurred_at DESC")
	return sb.String(), args
}

// matchesTags reports whether the decoded tag list carries every required
// tag exactly. This is the authoritative membership test; the LIKE clause
// above only narrows candidates and can false-positive on substrings
// ("cat" against a stored "category").
func (f Filter) matchesTags(tags []string) bool {
	for _, want := range f.Tags {
		found := false
		for _, have := range tags {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
