package domain

import (
	"strconv"
	"time"
)

// StageNA marks a revision with no applicable talk-page stage: the talk page
// has no revisions yet, or none of them declares a class.
const StageNA = "NA"

// Metadata is the loose revision record shape returned by the wiki API.
// It exists only between the client and the assembler; everything past the
// assembler works with Revision.
type Metadata = map[string]any

// Revision is one recorded edit of an article, composed once by the
// assembler and never mutated afterwards. RevID identifies it.
type Revision struct {
	Index     int
	Title     string
	Timestamp time.Time
	RevID     int64
	Minor     bool
	User      *string // nil when the editing user is hidden
	Comment   string
	Stage     string
	Text      *string // nil when text was not requested or is unavailable
}

// String renders the revision as its wiki-assigned identifier.
func (r Revision) String() string {
	return strconv.FormatInt(r.RevID, 10)
}
