// Package source provides gateways that fetch university documents from
// a JSON export, the embedded dataset or Redis, plus a circuit breaker
// that wraps any of them.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/vijay-prabhu/unimatch/internal/university"
)

// envelope is the collection export shape: {"universities": [...]}
type envelope struct {
	Universities []university.University `json:"universities"`
}

// Decode reads a document export. Both a bare array and an object with a
// "universities" field are accepted.
func Decode(r io.Reader) ([]university.University, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read documents: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []university.University{}, nil
	}

	var universities []university.University
	if data[0] == '[' {
		if err := json.Unmarshal(data, &universities); err != nil {
			return nil, fmt.Errorf("failed to decode documents: %w", err)
		}
	} else {
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("failed to decode documents: %w", err)
		}
		universities = env.Universities
	}

	if universities == nil {
		universities = []university.University{}
	}
	for i := range universities {
		universities[i].Normalize()
	}
	return universities, nil
}

// ReadFile decodes a document export from disk
func ReadFile(path string) ([]university.University, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// Encode writes universities as an indented JSON array
func Encode(w io.Writer, universities []university.University) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(universities)
}
