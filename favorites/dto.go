package favorites

// CreateFavoriteRequest is the add-favorite payload. Lat and Lon are pointers
// so that a missing coordinate can be told apart from a legitimate zero (the
// equator and the prime meridian are real places).
type CreateFavoriteRequest struct {
	CityName    string   `json:"cityName"`
	CountryCode string   `json:"countryCode"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
}

// DeleteByCityRequest is the delete-by-name payload.
type DeleteByCityRequest struct {
	CityName    string `json:"cityName"`
	CountryCode string `json:"countryCode"`
}

// SuccessResponse acknowledges a deletion.
type SuccessResponse struct {
	Success bool `json:"success"`
}
