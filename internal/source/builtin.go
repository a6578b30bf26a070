package source

import (
	"bytes"
	"context"
	_ "embed"
	"sync"

	"github.com/vijay-prabhu/unimatch/internal/university"
)

//go:embed data/universities.json
var builtinData []byte

var (
	builtinOnce sync.Once
	builtinDocs []university.University
	builtinErr  error
)

// BuiltinGateway serves the sample dataset compiled into the binary
type BuiltinGateway struct{}

// NewBuiltinGateway returns the embedded dataset gateway
func NewBuiltinGateway() *BuiltinGateway {
	return &BuiltinGateway{}
}

// FetchAllUniversities returns a fresh copy of the embedded dataset
func (BuiltinGateway) FetchAllUniversities(ctx context.Context) ([]university.University, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Builtin()
}

// Builtin decodes the embedded dataset. Callers receive their own copy.
func Builtin() ([]university.University, error) {
	builtinOnce.Do(func() {
		builtinDocs, builtinErr = Decode(bytes.NewReader(builtinData))
	})
	if builtinErr != nil {
		return nil, builtinErr
	}

	out := make([]university.University, len(builtinDocs))
	for i, u := range builtinDocs {
		u.Departments = append([]university.Department(nil), u.Departments...)
		out[i] = u
	}
	return out, nil
}
