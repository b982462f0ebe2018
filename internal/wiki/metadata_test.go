package wiki

import (
	"testing"
	"time"

	"wikihistories/internal/domain"
)

func TestUsers(t *testing.T) {
	t.Parallel()

	records := []domain.Metadata{
		{"user": "Alice"},
		{"revid": float64(123)},
		{"user": "Bob"},
	}

	users := Users(records)
	if len(users) != len(records) {
		t.Fatalf("expected %d entries, got %d", len(records), len(users))
	}
	if users[0] == nil || *users[0] != "Alice" {
		t.Fatalf("unexpected first user: %v", users[0])
	}
	if users[1] != nil {
		t.Fatalf("expected hidden user to be nil, got %q", *users[1])
	}
	if users[2] == nil || *users[2] != "Bob" {
		t.Fatalf("unexpected third user: %v", users[2])
	}
}

func TestMinorFlags(t *testing.T) {
	t.Parallel()

	records := []domain.Metadata{
		{"minor": ""},
		{"revid": float64(123)},
		{"minor": true},
	}

	flags := MinorFlags(records)
	want := []bool{true, false, true}
	for i := range want {
		if flags[i] != want[i] {
			t.Errorf("flags[%d] = %v, want %v", i, flags[i], want[i])
		}
	}
}

func TestComments(t *testing.T) {
	t.Parallel()

	records := []domain.Metadata{
		{"comment": "fixed typo"},
		{"revid": float64(123)},
	}

	comments := Comments(records)
	if comments[0] != "fixed typo" {
		t.Fatalf("unexpected comment: %q", comments[0])
	}
	if comments[1] != "" {
		t.Fatalf("expected empty comment, got %q", comments[1])
	}
}

func TestContentLegacyKey(t *testing.T) {
	t.Parallel()

	rec := domain.Metadata{"*": "some wikitext", "revid": float64(123)}
	got := Content(rec)
	if got == nil || *got != "some wikitext" {
		t.Fatalf("unexpected content: %v", got)
	}
}

func TestContentSlotsFormat(t *testing.T) {
	t.Parallel()

	rec := domain.Metadata{
		"slots": map[string]any{"main": map[string]any{"*": "slot wikitext"}},
		"revid": float64(123),
	}
	got := Content(rec)
	if got == nil || *got != "slot wikitext" {
		t.Fatalf("unexpected content: %v", got)
	}

	rec = domain.Metadata{
		"slots": map[string]any{"main": map[string]any{"content": "fv2 wikitext"}},
	}
	got = Content(rec)
	if got == nil || *got != "fv2 wikitext" {
		t.Fatalf("unexpected formatversion=2 content: %v", got)
	}
}

func TestContentLegacyKeyWins(t *testing.T) {
	t.Parallel()

	rec := domain.Metadata{
		"*":     "legacy",
		"slots": map[string]any{"main": map[string]any{"*": "slot"}},
	}
	got := Content(rec)
	if got == nil || *got != "legacy" {
		t.Fatalf("expected legacy key to win, got %v", got)
	}
}

func TestContentAbsent(t *testing.T) {
	t.Parallel()

	if got := Content(domain.Metadata{"revid": float64(123)}); got != nil {
		t.Fatalf("expected nil content, got %q", *got)
	}
}

func TestRevID(t *testing.T) {
	t.Parallel()

	if got := RevID(domain.Metadata{"revid": float64(987654)}); got != 987654 {
		t.Fatalf("unexpected revid: %d", got)
	}
	if got := RevID(domain.Metadata{}); got != 0 {
		t.Fatalf("expected zero revid, got %d", got)
	}
}

func TestTimestamp(t *testing.T) {
	t.Parallel()

	rec := domain.Metadata{"timestamp": "2021-01-02T03:04:05Z"}
	ts, err := Timestamp(rec)
	if err != nil {
		t.Fatalf("Timestamp returned error: %v", err)
	}
	want := time.Date(2021, time.January, 2, 3, 4, 5, 0, time.UTC)
	if !ts.Equal(want) {
		t.Fatalf("unexpected timestamp: %v", ts)
	}

	if _, err := Timestamp(domain.Metadata{"revid": float64(1)}); err == nil {
		t.Fatal("expected error for missing timestamp")
	}
	if _, err := Timestamp(domain.Metadata{"timestamp": "yesterday"}); err == nil {
		t.Fatal("expected error for malformed timestamp")
	}
}
