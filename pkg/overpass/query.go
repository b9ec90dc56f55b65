package overpass

import (
	"fmt"
	"strings"

	"github.com/geoforge/housefinder/internal/model"
)

// residentialTags are the building classifications treated as dwellings.
var residentialTags = []string{"residential", "apartments", "house"}

// buildQuery renders the Overpass QL statement for residential buildings
// with a full postal address inside box. "out center" asks the server to
// precompute a centroid for ways and relations, so the client never needs
// the raw geometry.
func buildQuery(box model.BoundingBox, limit int) string {
	var b strings.Builder
	b.WriteString("[out:json][timeout:30];\n(\n")
	for _, tag := range residentialTags {
		fmt.Fprintf(&b, "  nwr[\"building\"=%q][\"addr:housenumber\"][\"addr:street\"](%s);\n", tag, box)
	}
	b.WriteString(");\n")
	fmt.Fprintf(&b, "out center %d;\n", limit)
	return b.String()
}
