package changelog

import (
	"bytes"
	_ "embed"
	"fmt"
)

//go:embed starter.yaml
var starterRecords []byte

// StarterRecords returns the embedded example records file written by
// `chlog init`.
func StarterRecords() []byte {
	return starterRecords
}

// LoadStarter parses and validates the embedded example records.
func LoadStarter() (*Book, error) {
	if len(starterRecords) == 0 {
		return nil, fmt.Errorf("embedded starter records are empty (binary may have been built without embedded content)")
	}

	return LoadFromReader(bytes.NewReader(starterRecords), LoadOptions{})
}
