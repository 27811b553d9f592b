package domain

// Coordinate is a WGS-84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is a named place selected by the rider, immutable once chosen
// for a given ride request.
type Location struct {
	Name        string     `json:"name"`
	Address     string     `json:"address"`
	Coordinates Coordinate `json:"coordinates"`
}
