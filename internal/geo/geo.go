// Package geo holds the map capabilities used to place universities:
// address geocoding and marker rendering.
package geo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vijay-prabhu/unimatch/internal/university"
)

// ErrNotFound is returned when an address cannot be resolved
var ErrNotFound = errors.New("address not found")

// Geocoder resolves a street address to a coordinate
type Geocoder interface {
	Geocode(ctx context.Context, address string) (university.Position, error)
}

// MarkerRenderer draws a marker at a coordinate
type MarkerRenderer interface {
	RenderMarker(pos university.Position) error
}

// StaticGeocoder resolves addresses from positions already present in the
// dataset. Lookups match the full address, and fall back to the longest
// indexed address that prefixes the query.
type StaticGeocoder struct {
	positions map[string]university.Position
}

// NewStaticGeocoder indexes every university that carries a position
func NewStaticGeocoder(universities []university.University) *StaticGeocoder {
	g := &StaticGeocoder{positions: make(map[string]university.Position)}
	for _, u := range universities {
		if u.Position == nil || u.Address == "" {
			continue
		}
		g.positions[normalizeAddress(u.Address)] = *u.Position
	}
	return g
}

// Geocode looks up address
func (g *StaticGeocoder) Geocode(ctx context.Context, address string) (university.Position, error) {
	if err := ctx.Err(); err != nil {
		return university.Position{}, err
	}

	key := normalizeAddress(address)
	if key == "" {
		return university.Position{}, fmt.Errorf("%w: empty address", ErrNotFound)
	}
	if pos, ok := g.positions[key]; ok {
		return pos, nil
	}

	best := ""
	for indexed := range g.positions {
		if strings.HasPrefix(key, indexed+" ") && len(indexed) > len(best) {
			best = indexed
		}
	}
	if best != "" {
		return g.positions[best], nil
	}
	return university.Position{}, fmt.Errorf("%w: %s", ErrNotFound, address)
}

// Len returns the number of indexed addresses
func (g *StaticGeocoder) Len() int {
	return len(g.positions)
}

func normalizeAddress(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TextRenderer writes one "lat,lng" line per marker
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer renders markers to w
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

// RenderMarker writes the marker coordinate
func (r *TextRenderer) RenderMarker(pos university.Position) error {
	_, err := fmt.Fprintf(r.w, "%.6f,%.6f\n", pos.Lat, pos.Lng)
	return err
}

// Locate returns the position of u, geocoding its address when the
// document carries no coordinate.
func Locate(ctx context.Context, g Geocoder, u *university.University) (university.Position, error) {
	if u.Position != nil {
		return *u.Position, nil
	}
	if u.Address == "" {
		return university.Position{}, fmt.Errorf("%w: %s has no address", ErrNotFound, u.Name)
	}
	return g.Geocode(ctx, u.Address)
}
