package overpass

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoforge/housefinder/internal/model"
)

func raw(s string) json.RawMessage { return json.RawMessage(s) }

func TestParseElementsSkipAndContinue(t *testing.T) {
	elements := []json.RawMessage{
		raw(`{"type":"node","id":1,"lat":1.0,"lon":2.0,"tags":{"addr:street":"A St","addr:housenumber":"1"}}`),
		raw(`{"tags": "this should be an object"}`),
		raw(`{"type":"node","id":2,"lat":3.0,"lon":4.0,"tags":{"addr:street":"B St","addr:housenumber":"2"}}`),
	}

	got := parseElements(elements)
	require.Len(t, got, 2)
	assert.Equal(t, "A St, 1", got[0].Address)
	assert.Equal(t, "B St, 2", got[1].Address)
}

func TestParseElement(t *testing.T) {
	lat, lon := 52.1, 13.2
	fullTags := map[string]string{
		"addr:street":      "Haupt Str",
		"addr:housenumber": "5a",
		"addr:postcode":    "10557",
		"addr:city":        "Berlin",
		"building":         "apartments",
		"building:levels":  "4",
	}

	tests := []struct {
		name   string
		el     element
		wantOK bool
		want   model.Building
	}{
		{
			name:   "node with full tags",
			el:     element{Type: "node", ID: 7, Lat: &lat, Lon: &lon, Tags: fullTags},
			wantOK: true,
			want: model.Building{
				Address: "Haupt Str, 5a, 10557, Berlin",
				Lat:     52.1, Lon: 13.2, OSMID: 7,
				BuildingType: "apartments", Levels: "4",
			},
		},
		{
			name:   "relation with center",
			el:     element{Type: "relation", ID: 9, Center: &latLon{Lat: 1, Lon: 2}, Tags: map[string]string{"addr:street": "X", "addr:housenumber": "2"}},
			wantOK: true,
			want: model.Building{
				Address: "X, 2", Lat: 1, Lon: 2, OSMID: 9,
				BuildingType: model.UnknownValue, Levels: model.UnknownValue,
			},
		},
		{
			name:   "missing street",
			el:     element{Type: "node", Lat: &lat, Lon: &lon, Tags: map[string]string{"addr:housenumber": "2"}},
			wantOK: false,
		},
		{
			name:   "missing house number",
			el:     element{Type: "node", Lat: &lat, Lon: &lon, Tags: map[string]string{"addr:street": "X"}},
			wantOK: false,
		},
		{
			name:   "node without coordinates",
			el:     element{Type: "node", Tags: map[string]string{"addr:street": "X", "addr:housenumber": "2"}},
			wantOK: false,
		},
		{
			name:   "way without center",
			el:     element{Type: "way", Tags: map[string]string{"addr:street": "X", "addr:housenumber": "2"}},
			wantOK: false,
		},
		{
			name:   "no tags at all",
			el:     element{Type: "node", Lat: &lat, Lon: &lon},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseElement(tt.el)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDisplayAddressOmitsAbsentFields(t *testing.T) {
	tags := map[string]string{
		"addr:street":      "Kanal Weg",
		"addr:housenumber": "3",
		"addr:city":        "Utrecht",
	}
	assert.Equal(t, "Kanal Weg, 3, Utrecht", displayAddress(tags))
}

func TestBuildQuery(t *testing.T) {
	q := buildQuery(model.BoundingBox{South: 48.8, North: 48.92, West: 2.2, East: 2.5}, 20)

	assert.Contains(t, q, "[out:json][timeout:30];")
	for _, tag := range []string{"residential", "apartments", "house"} {
		assert.Contains(t, q, `nwr["building"="`+tag+`"]["addr:housenumber"]["addr:street"](48.8,2.2,48.92,2.5);`)
	}
	assert.Contains(t, q, "out center 20;")
}
