package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeDuration
	TypeString
	TypeEnum
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeDuration:
		return "duration"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type and validation rules.
type ConfigKeySchema struct {
	Path          string          // Key path (e.g., "tag_prefix")
	Type          ConfigValueType // Expected value type for validation
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"input":          {Path: "input", Type: TypeString, Description: "Records file path or http(s) URL"},
	"output":         {Path: "output", Type: TypeString, Description: "Rendered changelog path (\"-\" = stdout)"},
	"changelog_dir":  {Path: "changelog_dir", Type: TypeString, Description: "Directory for per-release files"},
	"repository_url": {Path: "repository_url", Type: TypeString, Description: "Repository web URL for links"},
	"space":          {Path: "space", Type: TypeString, Description: "GitHub organisation or user"},
	"project":        {Path: "project", Type: TypeString, Description: "GitHub repository name"},
	"git_remote":     {Path: "git_remote", Type: TypeString, Description: "Git remote used to detect the repository URL"},
	"tag_prefix":     {Path: "tag_prefix", Type: TypeString, Description: "Prefix applied to compare refs"},
	"category_heading": {
		Path:          "category_heading",
		Type:          TypeEnum,
		AllowedValues: []string{"h2", "h3", "bold"},
		Description:   "Category heading style",
	},
	"preamble":       {Path: "preamble", Type: TypeString, Description: "Line written below the title"},
	"require_semver": {Path: "require_semver", Type: TypeBool, Description: "Report non-semver versions in check"},
	"fetch_timeout":  {Path: "fetch_timeout", Type: TypeDuration, Description: "Timeout for http(s) records"},
	"max_parallel":   {Path: "max_parallel", Type: TypeInt, Description: "Concurrent writers for split"},
}

// SortedKeys returns the known keys in alphabetical order.
func SortedKeys() []ConfigKeySchema {
	keys := make([]ConfigKeySchema, 0, len(KnownKeys))
	for _, schema := range KnownKeys {
		keys = append(keys, schema)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Path < keys[j].Path })
	return keys
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// ParsedValue represents a configuration value after validation.
type ParsedValue struct {
	Raw    string
	Parsed interface{}
	Type   ConfigValueType
}

// ValidateValue validates a value against the schema for a given key.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}

	switch schema.Type {
	case TypeBool:
		switch strings.ToLower(value) {
		case "true":
			return ParsedValue{Raw: value, Parsed: true, Type: TypeBool}, nil
		case "false":
			return ParsedValue{Raw: value, Parsed: false, Type: TypeBool}, nil
		}
		return ParsedValue{}, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
	case TypeInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return ParsedValue{}, fmt.Errorf("invalid integer: %q", value)
		}
		return ParsedValue{Raw: value, Parsed: n, Type: TypeInt}, nil
	case TypeDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return ParsedValue{}, fmt.Errorf("invalid duration: %q (examples: 5s, 1m)", value)
		}
		return ParsedValue{Raw: value, Parsed: d.String(), Type: TypeDuration}, nil
	case TypeEnum:
		for _, allowed := range schema.AllowedValues {
			if value == allowed {
				return ParsedValue{Raw: value, Parsed: value, Type: TypeEnum}, nil
			}
		}
		return ParsedValue{}, fmt.Errorf("invalid value: %q (valid options: %s)",
			value, strings.Join(schema.AllowedValues, ", "))
	default:
		return ParsedValue{Raw: value, Parsed: value, Type: TypeString}, nil
	}
}
