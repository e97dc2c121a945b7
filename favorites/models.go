// Package favorites persists each user's saved cities and exposes the
// ownership-scoped CRUD over them. Every query carries the owner's id in its
// predicate, so one user's favorites are invisible to another by
// construction: a record owned by someone else and a record that does not
// exist are indistinguishable.
package favorites

import "time"

// Favorite is a user's saved city.
type Favorite struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	CityName    string    `json:"cityName"`
	CountryCode string    `json:"countryCode"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	CreatedAt   time.Time `json:"createdAt"`
}
