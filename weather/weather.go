// Package weather serves current conditions from a static city list with
// canned per-city records. A small random jitter is applied on every read so
// repeated lookups look like changing weather. The rest of the application
// consumes it through two lookups, by city name and by coordinates, so a
// real provider could be substituted behind the same interface.
package weather

import (
	"embed"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/ashishjangde/flip-weather/apperror"
)

//go:embed data/cities.json data/conditions.json
var dataFS embed.FS

// City is an entry in the static city list.
type City struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Conditions is a current-weather snapshot.
type Conditions struct {
	CityName           string  `json:"cityName"`
	CountryCode        string  `json:"countryCode"`
	Temperature        float64 `json:"temperature"`
	FeelsLike          float64 `json:"feelsLike"`
	Humidity           int     `json:"humidity"`
	WindSpeed          float64 `json:"windSpeed"`
	WindDirection      int     `json:"windDirection"`
	WeatherCondition   string  `json:"weatherCondition"`
	WeatherDescription string  `json:"weatherDescription"`
	WeatherIcon        string  `json:"weatherIcon"`
	Pressure           int     `json:"pressure"`
	Visibility         int     `json:"visibility"`
	Timestamp          int64   `json:"timestamp"`
	Lat                float64 `json:"lat,omitempty"`
	Lon                float64 `json:"lon,omitempty"`
}

// Service answers weather and city-search queries from the embedded data.
// The data is read-only after construction, so a single Service is safe for
// concurrent requests; jitter draws from the locked top-level rand source.
type Service struct {
	cities     []City
	conditions map[string]Conditions
}

// NewService loads the embedded data set. It fails only if the embedded files
// are malformed, which would be a build defect.
func NewService() (*Service, error) {
	citiesRaw, err := dataFS.ReadFile("data/cities.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read city list: %w", err)
	}
	var cities []City
	if err := json.Unmarshal(citiesRaw, &cities); err != nil {
		return nil, fmt.Errorf("failed to parse city list: %w", err)
	}

	conditionsRaw, err := dataFS.ReadFile("data/conditions.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read conditions: %w", err)
	}
	conditions := map[string]Conditions{}
	if err := json.Unmarshal(conditionsRaw, &conditions); err != nil {
		return nil, fmt.Errorf("failed to parse conditions: %w", err)
	}

	return &Service{
		cities:     cities,
		conditions: conditions,
	}, nil
}

// ByCity returns current conditions for a city name.
func (s *Service) ByCity(cityName string) (*Conditions, error) {
	base, ok := s.conditions[cityName]
	if !ok {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("weather data not available for %s", cityName), nil)
	}
	c := s.withJitter(base)
	return &c, nil
}

// ByCoordinates returns current conditions for the city nearest to (lat, lon)
// and echoes the requested coordinates in the result.
func (s *Service) ByCoordinates(lat, lon float64) (*Conditions, error) {
	var closest string
	minDistance := -1.0
	for _, city := range s.cities {
		dLat := city.Lat - lat
		dLon := city.Lon - lon
		// Squared euclidean distance is enough for picking a winner.
		distance := dLat*dLat + dLon*dLon
		if minDistance < 0 || distance < minDistance {
			minDistance = distance
			closest = city.Name
		}
	}

	c, err := s.ByCity(closest)
	if err != nil {
		return nil, err
	}
	c.Lat = lat
	c.Lon = lon
	return c, nil
}

// Search returns up to limit cities whose name starts with q,
// case-insensitively, ordered by name. An empty query matches nothing.
func (s *Service) Search(q string, limit int) []City {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" || limit <= 0 {
		return []City{}
	}

	matches := []City{}
	for _, city := range s.cities {
		if strings.HasPrefix(strings.ToLower(city.Name), q) {
			matches = append(matches, city)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// withJitter perturbs the canned record so consecutive reads differ, and
// stamps the current time.
func (s *Service) withJitter(base Conditions) Conditions {
	c := base
	c.Temperature = vary(base.Temperature, 2)
	c.FeelsLike = vary(base.FeelsLike, 2)
	c.Humidity = clampInt(base.Humidity+rand.Intn(11)-5, 0, 100)
	c.WindSpeed = vary(base.WindSpeed, 1)
	if c.WindSpeed < 0 {
		c.WindSpeed = 0
	}
	c.Timestamp = time.Now().Unix()
	return c
}

// vary shifts value by a uniform amount in [-spread, spread], rounded to one
// decimal place.
func vary(value, spread float64) float64 {
	shifted := value + (rand.Float64()*2-1)*spread
	return math.Round(shifted*10) / 10
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
