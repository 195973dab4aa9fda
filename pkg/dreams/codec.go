package dreams

import "encoding/json"

// Tag blobs and mood tokens are packed into flat TEXT columns. The lenient
// decode rules live here and nowhere else: malformed stored data degrades to
// a safe default instead of failing the read path.

// EncodeTags serializes an ordered tag list into the JSON array blob stored
// in the tags column. Never fails; a nil or empty list encodes as "[]".
func EncodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeTags parses a stored tag blob back into an ordered tag list.
// Malformed JSON degrades to an empty list rather than erroring.
func DecodeTags(blob string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(blob), &tags); err != nil {
		return []string{}
	}
	if tags == nil {
		return []string{}
	}
	return tags
}
