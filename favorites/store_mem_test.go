package favorites

import (
	"context"
	"sync"
	"time"

	"github.com/ashishjangde/flip-weather/apperror"
)

// memStore is an in-memory Store for handler tests, enforcing the same
// uniqueness and ownership rules as the Postgres store.
type memStore struct {
	mu        sync.Mutex
	nextID    int
	favorites map[int]*Favorite
}

func newMemStore() *memStore {
	return &memStore{favorites: map[int]*Favorite{}}
}

func (s *memStore) ListForUser(ctx context.Context, userID int) ([]Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Favorite{}
	for _, f := range s.favorites {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (s *memStore) Create(ctx context.Context, userID int, cityName, countryCode string, lat, lon float64) (*Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.favorites {
		if f.UserID == userID && f.CityName == cityName {
			return nil, apperror.NewConflictError("city is already in favorites", nil)
		}
	}

	s.nextID++
	f := &Favorite{
		ID:          s.nextID,
		UserID:      userID,
		CityName:    cityName,
		CountryCode: countryCode,
		Lat:         lat,
		Lon:         lon,
		CreatedAt:   time.Now(),
	}
	s.favorites[f.ID] = f
	copied := *f
	return &copied, nil
}

func (s *memStore) GetByID(ctx context.Context, id, userID int) (*Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.favorites[id]
	if !ok || f.UserID != userID {
		return nil, apperror.NewNotFoundError("favorite not found", nil)
	}
	copied := *f
	return &copied, nil
}

func (s *memStore) DeleteByID(ctx context.Context, id, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.favorites[id]
	if !ok || f.UserID != userID {
		return apperror.NewNotFoundError("favorite not found", nil)
	}
	delete(s.favorites, id)
	return nil
}

func (s *memStore) DeleteByCity(ctx context.Context, userID int, cityName, countryCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, f := range s.favorites {
		if f.UserID == userID && f.CityName == cityName && f.CountryCode == countryCode {
			delete(s.favorites, id)
			return nil
		}
	}
	return apperror.NewNotFoundError("favorite not found", nil)
}
