package shared

import (
	"encoding/json"
	"fmt"
	"os"
)

// MarshalJSON serializes data to JSON, optionally indented for terminal output.
func MarshalJSON(data any, pretty bool) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if pretty {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return out, nil
}

// ValidateJSON reports whether data is syntactically valid JSON.
func ValidateJSON(data []byte) bool {
	return json.Valid(data)
}

// VerifyAndReadFile reads the file at path and confirms it contains valid JSON.
func VerifyAndReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	if !ValidateJSON(data) {
		return nil, fmt.Errorf("file %s does not contain valid JSON", path)
	}

	return data, nil
}
