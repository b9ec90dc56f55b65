package regions

import "github.com/geoforge/housefinder/internal/model"

func city(name string, south, north, west, east float64) CityBounds {
	return CityBounds{Name: name, Box: model.BoundingBox{South: south, North: north, West: west, East: east}}
}

var builtin = map[string]Country{
	"germany": {Name: "🇩🇪 Germany", Cities: map[string]CityBounds{
		"berlin":    city("Berlin", 52.35, 52.65, 13.15, 13.65),
		"munich":    city("Munich", 48.06, 48.21, 11.45, 11.65),
		"frankfurt": city("Frankfurt", 50.00, 50.18, 8.40, 8.88),
	}},
	"france": {Name: "🇫🇷 France", Cities: map[string]CityBounds{
		"paris":     city("Paris", 48.80, 48.92, 2.20, 2.50),
		"lyon":      city("Lyon", 45.73, 45.80, 4.80, 4.90),
		"marseille": city("Marseille", 43.27, 43.32, 5.35, 5.43),
		"nice":      city("Nice", 43.68, 43.73, 7.24, 7.32),
		"toulouse":  city("Toulouse", 43.58, 43.65, 1.41, 1.48),
	}},
	"netherlands": {Name: "🇳🇱 Netherlands", Cities: map[string]CityBounds{
		"amsterdam": city("Amsterdam", 52.30, 52.42, 4.80, 5.00),
		"rotterdam": city("Rotterdam", 51.88, 51.94, 4.40, 4.55),
		"utrecht":   city("Utrecht", 52.05, 52.13, 5.05, 5.15),
		"the_hague": city("The Hague", 52.03, 52.10, 4.27, 4.38),
	}},
	"spain": {Name: "🇪🇸 Spain", Cities: map[string]CityBounds{
		"madrid":    city("Madrid", 40.35, 40.52, -3.85, -3.55),
		"barcelona": city("Barcelona", 41.30, 41.47, 2.00, 2.25),
		"valencia":  city("Valencia", 39.40, 39.53, -0.45, -0.30),
	}},
	"italy": {Name: "🇮🇹 Italy", Cities: map[string]CityBounds{
		"rome":     city("Rome", 41.80, 41.95, 12.40, 12.55),
		"milan":    city("Milan", 45.43, 45.50, 9.15, 9.25),
		"naples":   city("Naples", 40.82, 40.88, 14.20, 14.30),
		"turin":    city("Turin", 45.04, 45.10, 7.63, 7.73),
		"florence": city("Florence", 43.76, 43.79, 11.22, 11.30),
	}},
	"austria": {Name: "🇦🇹 Austria", Cities: map[string]CityBounds{
		"vienna":    city("Vienna", 48.15, 48.27, 16.25, 16.50),
		"graz":      city("Graz", 47.04, 47.11, 15.38, 15.48),
		"salzburg":  city("Salzburg", 47.78, 47.82, 13.02, 13.08),
		"innsbruck": city("Innsbruck", 47.25, 47.28, 11.37, 11.42),
	}},
	"switzerland": {Name: "🇨🇭 Switzerland", Cities: map[string]CityBounds{
		"zurich": city("Zurich", 47.35, 47.40, 8.50, 8.60),
		"geneva": city("Geneva", 46.19, 46.25, 6.10, 6.20),
		"basel":  city("Basel", 47.54, 47.58, 7.56, 7.62),
		"bern":   city("Bern", 46.93, 46.97, 7.40, 7.48),
	}},
	"australia": {Name: "🇦🇺 Australia", Cities: map[string]CityBounds{
		"sydney":    city("Sydney", -34.00, -33.70, 150.90, 151.30),
		"melbourne": city("Melbourne", -37.90, -37.75, 144.90, 145.10),
		"brisbane":  city("Brisbane", -27.55, -27.35, 152.95, 153.15),
		"perth":     city("Perth", -32.05, -31.95, 115.80, 115.95),
	}},
	"canada": {Name: "🇨🇦 Canada", Cities: map[string]CityBounds{
		"toronto":   city("Toronto", 43.60, 43.80, -79.55, -79.25),
		"vancouver": city("Vancouver", 49.25, 49.30, -123.15, -123.05),
		"montreal":  city("Montreal", 45.45, 45.55, -73.70, -73.45),
		"ottawa":    city("Ottawa", 45.30, 45.45, -75.85, -75.65),
	}},
}
