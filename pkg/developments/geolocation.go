package developments

// Geolocation is the result of looking up a postcode with the geocoding
// service. Region has already been translated into the directory's fixed
// vocabulary by the geocoding adapter; Valid is false when the lookup
// failed or the postcode was unknown.
type Geolocation struct {
	Postcode      string   `json:"postcode"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Region        Region   `json:"region,omitempty"`
	AdminDistrict string   `json:"admin_district,omitempty"`
	Valid         bool     `json:"valid"`
}
