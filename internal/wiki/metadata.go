package wiki

import (
	"fmt"
	"time"

	"wikihistories/internal/domain"
)

// Users returns one entry per record: the user field value, or nil when the
// record carries no user at all (a hidden or suppressed editor). A hidden
// user is never represented as an empty string.
func Users(records []domain.Metadata) []*string {
	users := make([]*string, len(records))
	for i, rec := range records {
		if v, ok := rec["user"].(string); ok {
			u := v
			users[i] = &u
		}
	}
	return users
}

// MinorFlags returns one entry per record: true exactly when the record
// contains a minor key. The API marks minor edits with an empty-string
// value, so only presence matters.
func MinorFlags(records []domain.Metadata) []bool {
	flags := make([]bool, len(records))
	for i, rec := range records {
		_, flags[i] = rec["minor"]
	}
	return flags
}

// Comments returns one entry per record: the edit summary, or "" when the
// record has none.
func Comments(records []domain.Metadata) []string {
	comments := make([]string, len(records))
	for i, rec := range records {
		if v, ok := rec["comment"].(string); ok {
			comments[i] = v
		}
	}
	return comments
}

// Content extracts wikitext from a single revision record. The legacy
// format stores it directly under "*"; the multi-content-revision format
// nests it under slots → main. Nil when neither location holds content.
func Content(rec domain.Metadata) *string {
	if v, ok := rec["*"].(string); ok {
		return &v
	}
	slots, ok := rec["slots"].(map[string]any)
	if !ok {
		return nil
	}
	main, ok := slots["main"].(map[string]any)
	if !ok {
		return nil
	}
	if v, ok := main["*"].(string); ok {
		return &v
	}
	if v, ok := main["content"].(string); ok {
		return &v
	}
	return nil
}

// RevID reads the wiki-assigned revision identifier. JSON numbers decode
// into float64, so both shapes are accepted.
func RevID(rec domain.Metadata) int64 {
	switch v := rec["revid"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

// Timestamp parses the record's timestamp field. The API emits RFC 3339;
// a missing or malformed timestamp is a malformed record shape and
// propagates as an error.
func Timestamp(rec domain.Metadata) (time.Time, error) {
	if v, ok := rec["timestamp"].(time.Time); ok {
		return v, nil
	}
	s, ok := rec["timestamp"].(string)
	if !ok {
		return time.Time{}, fmt.Errorf("revision %d: missing timestamp", RevID(rec))
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("revision %d: parse timestamp: %w", RevID(rec), err)
	}
	return ts, nil
}
