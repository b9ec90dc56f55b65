package model

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// BoundingBox is a rectangular geographic region in degrees.
type BoundingBox struct {
	South float64 `json:"south" yaml:"south"`
	North float64 `json:"north" yaml:"north"`
	West  float64 `json:"west" yaml:"west"`
	East  float64 `json:"east" yaml:"east"`
}

// Validate checks that the box is non-degenerate.
func (b BoundingBox) Validate() error {
	if b.South >= b.North {
		return eris.Errorf("bounding box: south (%g) must be less than north (%g)", b.South, b.North)
	}
	if b.West >= b.East {
		return eris.Errorf("bounding box: west (%g) must be less than east (%g)", b.West, b.East)
	}
	return nil
}

// String renders the box in Overpass bbox order: south,west,north,east.
func (b BoundingBox) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", b.South, b.West, b.North, b.East)
}
