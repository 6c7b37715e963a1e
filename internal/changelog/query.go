package changelog

import (
	"fmt"
	"strings"
)

// Book is an ordered collection of releases, newest first as supplied.
type Book struct {
	Releases []Release
}

// ReleaseNotFoundError is returned when a requested version doesn't exist.
type ReleaseNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *ReleaseNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// NormalizeVersion lower-cases a version and removes a "v" prefix so that
// "v22.7.0" and "22.7.0" compare equal.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(version)), "v")
}

// Get retrieves a release by version. Accepts both "v21.9.1" and "21.9.1".
func (b *Book) Get(version string) (*Release, error) {
	normalized := NormalizeVersion(version)

	for i := range b.Releases {
		if NormalizeVersion(b.Releases[i].Version) == normalized {
			return &b.Releases[i], nil
		}
	}

	return nil, &ReleaseNotFoundError{
		Version:           version,
		AvailableVersions: b.Versions(),
	}
}

// Versions returns all version identifiers in book order.
func (b *Book) Versions() []string {
	versions := make([]string, len(b.Releases))
	for i, r := range b.Releases {
		versions[i] = r.Version
	}
	return versions
}

// Latest returns the first n releases. A non-positive n returns none; an n
// larger than the book returns all of them.
func (b *Book) Latest(n int) []Release {
	if n <= 0 {
		return []Release{}
	}
	if n >= len(b.Releases) {
		return b.Releases
	}
	return b.Releases[:n]
}

// Len returns the number of releases.
func (b *Book) Len() int {
	return len(b.Releases)
}

// EntryCount returns the total number of entries across all releases.
func (b *Book) EntryCount() int {
	count := 0
	for _, r := range b.Releases {
		count += r.EntryCount()
	}
	return count
}
