package changelog

import (
	"fmt"
	"net/url"
	"strings"
)

// Links builds commit and comparison URLs for a hosted repository, e.g.
// https://github.com/<space>/<project>.
type Links struct {
	BaseURL   string
	TagPrefix string
}

// NewLinks returns a Links for baseURL. Trailing slashes and a ".git" suffix
// are removed. The base URL must be absolute.
func NewLinks(baseURL, tagPrefix string) (*Links, error) {
	base := strings.TrimSuffix(strings.TrimRight(strings.TrimSpace(baseURL), "/"), ".git")
	u, err := url.Parse(base)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, &ValidationError{Field: "repository_url", Message: fmt.Sprintf("URL %q is not absolute", baseURL)}
	}
	return &Links{BaseURL: base, TagPrefix: tagPrefix}, nil
}

// CommitURL returns <base>/commit/<hash>.
func (l *Links) CommitURL(hash string) string {
	return l.BaseURL + "/commit/" + hash
}

// CompareURL returns <base>/compare/<from>...<to> with the tag prefix applied
// to both refs.
func (l *Links) CompareURL(from, to string) string {
	return fmt.Sprintf("%s/compare/%s...%s", l.BaseURL, l.Tag(from), l.Tag(to))
}

// TagURL returns <base>/releases/tag/<tag>. Used for a first release that
// has nothing to compare against.
func (l *Links) TagURL(ref string) string {
	return l.BaseURL + "/releases/tag/" + l.Tag(ref)
}

// Tag applies the tag prefix to a version ref. HEAD and refs that already
// carry the prefix are returned unchanged.
func (l *Links) Tag(ref string) string {
	if l.TagPrefix == "" || ref == "HEAD" || strings.HasPrefix(ref, l.TagPrefix) {
		return ref
	}
	return l.TagPrefix + ref
}
