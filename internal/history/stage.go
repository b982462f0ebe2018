package history

import (
	"regexp"
	"sort"
	"time"

	"wikihistories/internal/domain"
)

// TalkRevision is one talk-page edit reduced to what stage classification
// needs: when it happened and which class label it declared.
type TalkRevision struct {
	Timestamp time.Time
	Stage     string
}

var classExpr = regexp.MustCompile(`(?i)\bclass\s*=\s*([A-Za-z][A-Za-z-]*)`)

// StageFromContent reads the class parameter out of a talk page's banner
// template wikitext ("{{WikiProject ...|class=Stub|...}}" yields "Stub").
// Content without a class declaration yields the NA sentinel.
func StageFromContent(wikitext string) string {
	m := classExpr.FindStringSubmatch(wikitext)
	if m == nil {
		return domain.StageNA
	}
	return m[1]
}

// sortChronological orders talk revisions oldest first. The client returns
// newest first, and StageAt's binary search requires chronological order,
// so the assembler sorts rather than trusting input order.
func sortChronological(talk []TalkRevision) {
	sort.Slice(talk, func(i, j int) bool {
		return talk[i].Timestamp.Before(talk[j].Timestamp)
	})
}

// StageAt returns the stage in effect on the talk page at the given
// moment: the label of the most recent talk revision whose timestamp is at
// or before ts. A talk revision with a timestamp equal to ts counts as
// already in effect. When the talk page has no revisions, or ts predates
// all of them, the NA sentinel is returned.
func StageAt(talk []TalkRevision, ts time.Time) string {
	if len(talk) == 0 {
		return domain.StageNA
	}
	i := sort.Search(len(talk), func(i int) bool {
		return talk[i].Timestamp.After(ts)
	})
	if i == 0 {
		return domain.StageNA
	}
	return talk[i-1].Stage
}
