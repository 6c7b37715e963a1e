package changelog

import "time"

// DateLayout is the ISO-8601 calendar date format used in release headings
// and records files.
const DateLayout = "2006-01-02"

// Release is one published version and the changes bundled under it.
// Categories are rendered in the order given; nothing is sorted.
type Release struct {
	Version    string
	Date       time.Time
	Categories []Category
	Compare    CompareLink
}

// Category groups entries sharing a classification, e.g. "Bug Fixes".
type Category struct {
	Label   string
	Entries []Entry
}

// Entry is a single change. CommitHash and CommitURL must refer to the
// same commit.
type Entry struct {
	Description string
	CommitHash  string
	CommitURL   string
}

// CompareLink maps a version label to a comparison URL between two refs.
// An empty VersionLabel means the release version.
type CompareLink struct {
	VersionLabel string
	FromRef      string
	ToRef        string
	CompareURL   string
}

// Label returns the reference label for the release heading.
func (r Release) Label() string {
	if r.Compare.VersionLabel != "" {
		return r.Compare.VersionLabel
	}
	return r.Version
}

// FormattedDate returns the release date as YYYY-MM-DD.
func (r Release) FormattedDate() string {
	return r.Date.Format(DateLayout)
}

// EntryCount returns the number of entries across all categories.
func (r Release) EntryCount() int {
	count := 0
	for _, c := range r.Categories {
		count += len(c.Entries)
	}
	return count
}

// IsEmpty returns true if the release has no entries in any category.
func (r Release) IsEmpty() bool {
	return r.EntryCount() == 0
}
