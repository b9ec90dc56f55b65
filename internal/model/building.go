package model

// UnknownValue is the placeholder stored when a building tag is absent.
const UnknownValue = "N/A"

// Building is one residential structure discovered in OpenStreetMap.
type Building struct {
	// Address is the display address (street, house number, postcode, city
	// joined with ", "). It is the deduplication key and must be non-empty
	// for the record to be storable.
	Address string `json:"address"`

	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	// OSMID is the element id from the source dataset, kept for
	// traceability only.
	OSMID int64 `json:"osm_id"`

	// BuildingType is the value of the "building" tag, UnknownValue if absent.
	BuildingType string `json:"building_type"`

	// Levels is the value of the "building:levels" tag, UnknownValue if absent.
	Levels string `json:"levels"`
}
