package source

import (
	"context"
	"fmt"

	"github.com/vijay-prabhu/unimatch/internal/university"
)

// FileGateway serves universities from a JSON document export on disk.
// The file is read on every fetch so edits are picked up without a restart.
type FileGateway struct {
	path string
}

// NewFileGateway creates a gateway over the export at path
func NewFileGateway(path string) *FileGateway {
	return &FileGateway{path: path}
}

// FetchAllUniversities reads and decodes the export
func (g *FileGateway) FetchAllUniversities(ctx context.Context) ([]university.University, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	universities, err := ReadFile(g.path)
	if err != nil {
		return nil, fmt.Errorf("file source %s: %w", g.path, err)
	}
	return universities, nil
}
