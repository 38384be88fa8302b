package domain

// Hotel is the full hotel record, address and geolocation included.
type Hotel struct {
	ID         int64
	Name       string
	Stars      int
	Country    string
	City       string
	Street     string
	Building   string
	ZipCode    string
	Latitude   float64
	Longitude  float64
	Facilities []string
}
