// Package changelog renders release records into a markdown changelog.
//
// This package implements:
//   - The release data model (Release, Category, Entry, CompareLink)
//   - Validation of records before anything is written
//   - Markdown rendering with a strict one-blank-line section layout
//   - Loading records from YAML/JSON files, readers, and HTTP(S) URLs
//   - Structure linting of rendered documents via goldmark
//   - Querying and terminal formatting for the CLI
//
// Rendering is a pure function of its input: it performs no I/O beyond the
// supplied io.Writer and holds no shared state, so independent inputs can be
// rendered from any number of goroutines.
package changelog
