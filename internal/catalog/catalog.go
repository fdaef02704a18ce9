// Package catalog holds the static listing of surf spots and their beaches.
// Iteration order is declaration order; it defines the numbered menus the
// dialogue shows, so it must stay stable across calls.
package catalog

// Beach is a specific named break with its own coordinates and forecast.
type Beach struct {
	Key  string  `yaml:"key"`
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
}

// Spot is a coastal city or area grouping one or more beaches.
type Spot struct {
	Key     string  `yaml:"key"`
	Name    string  `yaml:"name"`
	Beaches []Beach `yaml:"beaches"`
}

// Catalog is an ordered, read-only set of spots.
type Catalog struct {
	spots []Spot
}

// New builds a catalog preserving the given spot order.
func New(spots []Spot) Catalog {
	return Catalog{spots: spots}
}

// Spots returns all spots in stable order.
func (c Catalog) Spots() []Spot {
	return c.spots
}

// Spot looks a spot up by key.
func (c Catalog) Spot(key string) (Spot, bool) {
	for _, s := range c.spots {
		if s.Key == key {
			return s, true
		}
	}
	return Spot{}, false
}

// Beach looks a beach up by key within a spot.
func (s Spot) Beach(key string) (Beach, bool) {
	for _, b := range s.Beaches {
		if b.Key == key {
			return b, true
		}
	}
	return Beach{}, false
}

// Default returns the built-in catalog of Buenos Aires province spots.
func Default() Catalog {
	return New([]Spot{
		{
			Key:  "mar_del_plata",
			Name: "Mar del Plata",
			Beaches: []Beach{
				{Key: "varese", Name: "Varese", Lat: -38.0088389, Lon: -57.532875},
				{Key: "la_perla", Name: "La Perla", Lat: -37.9942866, Lon: -57.5457393},
				{Key: "biologia", Name: "Biología", Lat: -38.0291667, Lon: -57.5325},
				{Key: "mariano", Name: "Mariano", Lat: -38.0833333, Lon: -57.5388889},
				{Key: "sun_waikiki", Name: "Sun Rider / Waikiki", Lat: -37.9554, Lon: -57.538},
				{Key: "general", Name: "General (otras playas)", Lat: -38.00042, Lon: -57.5562},
			},
		},
		{
			Key:  "chapadmalal",
			Name: "Chapadmalal",
			Beaches: []Beach{
				{Key: "general", Name: "General", Lat: -38.03, Lon: -57.72},
			},
		},
		{
			Key:  "miramar",
			Name: "Miramar",
			Beaches: []Beach{
				{Key: "general", Name: "General", Lat: -38.27044, Lon: -57.8388},
			},
		},
		{
			Key:  "quequen",
			Name: "Quequén",
			Beaches: []Beach{
				{Key: "monte_pasubio", Name: "Monte Pasubio", Lat: -38.57419, Lon: -58.6901},
			},
		},
		{
			Key:  "necochea",
			Name: "Necochea",
			Beaches: []Beach{
				{Key: "escollera", Name: "Escollera", Lat: -38.584204, Lon: -58.697162},
			},
		},
	})
}
