package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// recordsFile is the on-disk schema of a records file. JSON documents with
// the same keys are accepted since JSON is valid YAML.
type recordsFile struct {
	Releases []releaseRecord `yaml:"releases"`
}

type releaseRecord struct {
	Version    string           `yaml:"version"`
	Date       string           `yaml:"date"`
	Compare    compareRecord    `yaml:"compare,omitempty"`
	Categories []categoryRecord `yaml:"categories,omitempty"`
}

type compareRecord struct {
	From string `yaml:"from,omitempty"`
	To   string `yaml:"to,omitempty"`
	URL  string `yaml:"url,omitempty"`
}

type categoryRecord struct {
	Label   string        `yaml:"label"`
	Entries []entryRecord `yaml:"entries"`
}

type entryRecord struct {
	Description string `yaml:"description"`
	Hash        string `yaml:"hash"`
	URL         string `yaml:"url,omitempty"`
}

// LoadOptions controls how records are completed after decoding.
type LoadOptions struct {
	// Links fills in missing commit and compare URLs. Nil leaves them empty,
	// which fails validation.
	Links *Links
}

// Load reads and validates a records file from the given path.
func Load(path string, opts LoadOptions) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening records file: %w", err)
	}
	defer f.Close()

	return LoadFromReader(f, opts)
}

// LoadFromReader reads and validates records from an io.Reader.
// An empty document yields an empty Book.
func LoadFromReader(r io.Reader, opts LoadOptions) (*Book, error) {
	var file recordsFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing records YAML: %w", err)
	}

	releases := make([]Release, 0, len(file.Releases))
	for i, rec := range file.Releases {
		rel, err := rec.toRelease(fmt.Sprintf("releases[%d]", i), opts.Links)
		if err != nil {
			return nil, err
		}
		releases = append(releases, rel)
	}

	if err := Validate(releases); err != nil {
		return nil, err
	}

	return &Book{Releases: releases}, nil
}

func (rec releaseRecord) toRelease(field string, links *Links) (Release, error) {
	version := strings.TrimSpace(rec.Version)
	rel := Release{Version: version}

	if rec.Date != "" {
		date, err := time.Parse(DateLayout, strings.TrimSpace(rec.Date))
		if err != nil {
			return Release{}, &ValidationError{
				Field:   field + ".date",
				Message: fmt.Sprintf("invalid date format %q (expected: YYYY-MM-DD)", rec.Date),
			}
		}
		rel.Date = date
	}

	for _, cat := range rec.Categories {
		c := Category{Label: cat.Label, Entries: make([]Entry, 0, len(cat.Entries))}
		for _, e := range cat.Entries {
			entry := Entry{Description: e.Description, CommitHash: strings.TrimSpace(e.Hash), CommitURL: e.URL}
			if entry.CommitURL == "" && links != nil && entry.CommitHash != "" {
				entry.CommitURL = links.CommitURL(entry.CommitHash)
			}
			c.Entries = append(c.Entries, entry)
		}
		rel.Categories = append(rel.Categories, c)
	}

	rel.Compare = rec.Compare.toCompareLink(version, links)
	return rel, nil
}

func (rec compareRecord) toCompareLink(version string, links *Links) CompareLink {
	link := CompareLink{
		VersionLabel: version,
		FromRef:      strings.TrimSpace(rec.From),
		ToRef:        strings.TrimSpace(rec.To),
		CompareURL:   rec.URL,
	}
	if link.ToRef == "" {
		link.ToRef = version
	}
	if link.CompareURL != "" || links == nil || link.ToRef == "" {
		return link
	}
	if link.FromRef == "" {
		link.CompareURL = links.TagURL(link.ToRef)
	} else {
		link.CompareURL = links.CompareURL(link.FromRef, link.ToRef)
	}
	return link
}

// Marshal encodes releases in the records file schema.
func Marshal(releases []Release) ([]byte, error) {
	file := recordsFile{Releases: make([]releaseRecord, 0, len(releases))}
	for _, r := range releases {
		rec := releaseRecord{
			Version: r.Version,
			Date:    r.FormattedDate(),
			Compare: compareRecord{From: r.Compare.FromRef, To: r.Compare.ToRef, URL: r.Compare.CompareURL},
		}
		for _, c := range r.Categories {
			cat := categoryRecord{Label: c.Label}
			for _, e := range c.Entries {
				cat.Entries = append(cat.Entries, entryRecord{Description: e.Description, Hash: e.CommitHash, URL: e.CommitURL})
			}
			rec.Categories = append(rec.Categories, cat)
		}
		file.Releases = append(file.Releases, rec)
	}

	out, err := yaml.Marshal(&file)
	if err != nil {
		return nil, fmt.Errorf("encoding records YAML: %w", err)
	}
	return out, nil
}
