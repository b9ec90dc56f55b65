// Package regions holds the country and city bounding-box catalog that
// drives building searches. A built-in catalog covers the supported cities;
// an optional YAML file can replace it entirely.
package regions

import (
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/geoforge/housefinder/internal/model"
)

// CityBounds names a city and its search area.
type CityBounds struct {
	Name string            `yaml:"name"`
	Box  model.BoundingBox `yaml:"box"`
}

// Country groups cities under a display name.
type Country struct {
	Name   string                `yaml:"name"`
	Cities map[string]CityBounds `yaml:"cities"`
}

// Catalog is an immutable country → city lookup keyed by stable lowercase
// identifiers. Build one at startup and share it read-only.
type Catalog struct {
	countries map[string]Country
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{countries: builtin}
}

// LoadFile reads a catalog from a YAML file and validates every bounding box.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "regions: read %s", path)
	}

	var countries map[string]Country
	if err := yaml.Unmarshal(data, &countries); err != nil {
		return nil, eris.Wrapf(err, "regions: parse %s", path)
	}
	if len(countries) == 0 {
		return nil, eris.Errorf("regions: %s defines no countries", path)
	}

	c := &Catalog{countries: countries}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks every city box in the catalog.
func (c *Catalog) Validate() error {
	for ck, country := range c.countries {
		if len(country.Cities) == 0 {
			return eris.Errorf("regions: country %q has no cities", ck)
		}
		for yk, city := range country.Cities {
			if err := city.Box.Validate(); err != nil {
				return eris.Wrapf(err, "regions: %s/%s", ck, yk)
			}
		}
	}
	return nil
}

// CountryKeys returns the country identifiers in sorted order.
func (c *Catalog) CountryKeys() []string {
	keys := make([]string, 0, len(c.countries))
	for k := range c.countries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Country looks up a country by identifier (case-insensitive).
func (c *Catalog) Country(key string) (Country, bool) {
	country, ok := c.countries[strings.ToLower(key)]
	return country, ok
}

// CityKeys returns a country's city identifiers in sorted order.
func (c *Catalog) CityKeys(countryKey string) []string {
	country, ok := c.Country(countryKey)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(country.Cities))
	for k := range country.Cities {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve maps country and city identifiers to their display names and
// search area.
func (c *Catalog) Resolve(countryKey, cityKey string) (Country, CityBounds, error) {
	country, ok := c.Country(countryKey)
	if !ok {
		return Country{}, CityBounds{}, eris.Errorf("regions: unknown country %q", countryKey)
	}
	city, ok := country.Cities[strings.ToLower(cityKey)]
	if !ok {
		return Country{}, CityBounds{}, eris.Errorf("regions: unknown city %q in %s", cityKey, country.Name)
	}
	return country, city, nil
}
