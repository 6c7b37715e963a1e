package changelog

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ValidationError reports a structurally incomplete or malformed record.
// Field is a path such as "releases[0].categories[1].entries[2].description".
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Validate checks every release and returns the first ValidationError found,
// or nil if all records can be rendered.
func Validate(releases []Release) error {
	for i := range releases {
		if err := validateRelease(&releases[i], fmt.Sprintf("releases[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRelease checks a single release. The field prefix is "release".
func ValidateRelease(r *Release) error {
	return validateRelease(r, "release")
}

func validateRelease(r *Release, field string) error {
	if strings.TrimSpace(r.Version) == "" {
		return &ValidationError{Field: field + ".version", Message: "required field is empty"}
	}
	if strings.ContainsAny(r.Version, "\r\n[]") {
		return &ValidationError{Field: field + ".version", Message: fmt.Sprintf("invalid version %q", r.Version)}
	}
	if r.Date.IsZero() {
		return &ValidationError{Field: field + ".date", Message: "required field is empty"}
	}

	for i := range r.Categories {
		if err := validateCategory(&r.Categories[i], fmt.Sprintf("%s.categories[%d]", field, i)); err != nil {
			return err
		}
	}

	return validateCompareLink(r, field+".compare")
}

func validateCategory(c *Category, field string) error {
	if strings.TrimSpace(c.Label) == "" {
		return &ValidationError{Field: field + ".label", Message: "required field is empty"}
	}
	if strings.ContainsAny(c.Label, "\r\n") {
		return &ValidationError{Field: field + ".label", Message: "must be a single line"}
	}
	for i := range c.Entries {
		if err := validateEntry(&c.Entries[i], fmt.Sprintf("%s.entries[%d]", field, i)); err != nil {
			return err
		}
	}
	return nil
}

func validateEntry(e *Entry, field string) error {
	if strings.TrimSpace(e.Description) == "" {
		return &ValidationError{Field: field + ".description", Message: "change entry cannot be empty"}
	}
	if strings.TrimSpace(e.CommitHash) == "" {
		return &ValidationError{Field: field + ".hash", Message: "required field is empty"}
	}
	if strings.ContainsAny(e.CommitHash, " \t[]()") {
		return &ValidationError{Field: field + ".hash", Message: fmt.Sprintf("invalid commit hash %q", e.CommitHash)}
	}

	u, err := parseAbsoluteURL(e.CommitURL, field+".url")
	if err != nil {
		return err
	}
	if !strings.HasPrefix(path.Base(u.Path), e.CommitHash) {
		return &ValidationError{
			Field:   field + ".url",
			Message: fmt.Sprintf("%q does not reference commit %s", e.CommitURL, e.CommitHash),
		}
	}
	return nil
}

func validateCompareLink(r *Release, field string) error {
	if r.Compare.VersionLabel != "" && r.Compare.VersionLabel != r.Version {
		return &ValidationError{
			Field:   field + ".version",
			Message: fmt.Sprintf("label %q does not match release version %q", r.Compare.VersionLabel, r.Version),
		}
	}
	_, err := parseAbsoluteURL(r.Compare.CompareURL, field+".url")
	return err
}

// parseAbsoluteURL requires a non-empty URL with a scheme and a host.
func parseAbsoluteURL(raw, field string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ValidationError{Field: field, Message: "required field is empty"}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &ValidationError{Field: field, Message: fmt.Sprintf("invalid URL %q", raw)}
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, &ValidationError{Field: field, Message: fmt.Sprintf("URL %q is not absolute", raw)}
	}
	return u, nil
}
