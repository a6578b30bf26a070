package geo

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/unimatch/internal/university"
)

func fixture() []university.University {
	return []university.University{
		{Name: "서울대학교", Address: "서울특별시 관악구 관악로 1", Position: &university.Position{Lat: 37.4602, Lng: 126.952}},
		{Name: "연세대학교", Address: "서울특별시 서대문구 연세로 50", Position: &university.Position{Lat: 37.5658, Lng: 126.9386}},
		{Name: "위치없음대학교", Address: "경기도 어딘가"},
	}
}

func TestStaticGeocoder(t *testing.T) {
	g := NewStaticGeocoder(fixture())
	assert.Equal(t, 2, g.Len())

	tests := []struct {
		name    string
		address string
		wantLat float64
		wantErr bool
	}{
		{"exact", "서울특별시 관악구 관악로 1", 37.4602, false},
		{"extra whitespace", "  서울특별시  서대문구 연세로 50 ", 37.5658, false},
		{"building suffix", "서울특별시 관악구 관악로 1 301동", 37.4602, false},
		{"different street number", "서울특별시 관악구 관악로 10", 0, true},
		{"unknown", "부산광역시 금정구", 0, true},
		{"empty", "   ", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := g.Geocode(context.Background(), tt.address)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLat, pos.Lat)
		})
	}
}

func TestLocate(t *testing.T) {
	universities := fixture()
	g := NewStaticGeocoder(universities)
	ctx := context.Background()

	pos, err := Locate(ctx, g, &universities[0])
	require.NoError(t, err)
	assert.Equal(t, 126.952, pos.Lng)

	// No coordinate on the document, so the geocoder is consulted
	noPos := university.University{Name: "관악분교", Address: "서울특별시 관악구 관악로 1"}
	pos, err = Locate(ctx, g, &noPos)
	require.NoError(t, err)
	assert.Equal(t, 37.4602, pos.Lat)

	_, err = Locate(ctx, g, &universities[2])
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	var r MarkerRenderer = NewTextRenderer(&buf)

	require.NoError(t, r.RenderMarker(university.Position{Lat: 37.5, Lng: 127}))
	assert.Equal(t, "37.500000,127.000000\n", buf.String())
}
