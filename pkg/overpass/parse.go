package overpass

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/geoforge/housefinder/internal/model"
)

// response is the Overpass JSON payload. Elements stay raw so one malformed
// element cannot sink the whole batch.
type response struct {
	Elements []json.RawMessage `json:"elements"`
}

type element struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *latLon           `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type latLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// parseElements converts raw Overpass elements into building records,
// skipping anything without a usable address or coordinate.
func parseElements(raws []json.RawMessage) []model.Building {
	buildings := make([]model.Building, 0, len(raws))
	for _, raw := range raws {
		var el element
		if err := json.Unmarshal(raw, &el); err != nil {
			zap.L().Debug("skipping malformed overpass element", zap.Error(err))
			continue
		}
		b, ok := parseElement(el)
		if !ok {
			continue
		}
		buildings = append(buildings, b)
	}
	return buildings
}

func parseElement(el element) (model.Building, bool) {
	if el.Tags["addr:housenumber"] == "" || el.Tags["addr:street"] == "" {
		return model.Building{}, false
	}

	var lat, lon float64
	switch {
	case el.Type == "node" && el.Lat != nil && el.Lon != nil:
		lat, lon = *el.Lat, *el.Lon
	case el.Center != nil:
		lat, lon = el.Center.Lat, el.Center.Lon
	default:
		// Ways and relations without a precomputed center are skipped
		// rather than reconstructed from geometry.
		return model.Building{}, false
	}

	return model.Building{
		Address:      displayAddress(el.Tags),
		Lat:          lat,
		Lon:          lon,
		OSMID:        el.ID,
		BuildingType: tagOrUnknown(el.Tags, "building"),
		Levels:       tagOrUnknown(el.Tags, "building:levels"),
	}, true
}

// displayAddress joins the present address tags with ", " in the order
// street, house number, postcode, city.
func displayAddress(tags map[string]string) string {
	parts := make([]string, 0, 4)
	for _, key := range []string{"addr:street", "addr:housenumber", "addr:postcode", "addr:city"} {
		if v := tags[key]; v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}

func tagOrUnknown(tags map[string]string, key string) string {
	if v := tags[key]; v != "" {
		return v
	}
	return model.UnknownValue
}
