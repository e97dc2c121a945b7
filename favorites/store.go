package favorites

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashishjangde/flip-weather/apperror"
)

const pgUniqueViolation = "23505"

// Store persists (user, city) favorites. Implementations must enforce the
// per-user city-name uniqueness invariant and scope every read and write by
// the owner's id.
type Store interface {
	// ListForUser returns all favorites owned by userID. Order follows the
	// store default and is not part of the contract.
	ListForUser(ctx context.Context, userID int) ([]Favorite, error)
	// Create inserts a favorite for userID. Returns a ConflictError when the
	// user already has a favorite with the same city name.
	Create(ctx context.Context, userID int, cityName, countryCode string, lat, lon float64) (*Favorite, error)
	// GetByID returns the favorite only if it is owned by userID; otherwise a
	// NotFoundError, whether the record is absent or owned by someone else.
	GetByID(ctx context.Context, id, userID int) (*Favorite, error)
	// DeleteByID removes the favorite under the same ownership rule as
	// GetByID.
	DeleteByID(ctx context.Context, id, userID int) error
	// DeleteByCity removes userID's favorite matching city name and country
	// code. Returns a NotFoundError when nothing matches.
	DeleteByCity(ctx context.Context, userID int, cityName, countryCode string) error
}

// PostgresStore is the pgx-backed Store.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore on the shared pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListForUser(ctx context.Context, userID int) ([]Favorite, error) {
	query := `SELECT id, user_id, city_name, country_code, lat, lon, created_at
	          FROM favorites WHERE user_id = $1`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list favorites", err)
	}
	defer rows.Close()

	favorites := []Favorite{}
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.CityName, &f.CountryCode, &f.Lat, &f.Lon, &f.CreatedAt); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan favorite", err)
		}
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list favorites", err)
	}
	return favorites, nil
}

func (s *PostgresStore) Create(ctx context.Context, userID int, cityName, countryCode string, lat, lon float64) (*Favorite, error) {
	// Pre-check for a friendlier conflict path. Two concurrent creates can
	// both pass this check; the unique index on (user_id, city_name) catches
	// the race below and is mapped to the same ConflictError.
	var existingID int
	err := s.db.QueryRow(ctx,
		`SELECT id FROM favorites WHERE user_id = $1 AND city_name = $2`,
		userID, cityName,
	).Scan(&existingID)
	if err == nil {
		return nil, apperror.NewConflictError("city is already in favorites", nil)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewDatabaseError("failed to check existing favorite", err)
	}

	f := &Favorite{UserID: userID, CityName: cityName, CountryCode: countryCode, Lat: lat, Lon: lon}
	query := `INSERT INTO favorites (user_id, city_name, country_code, lat, lon)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at`
	err = s.db.QueryRow(ctx, query, userID, cityName, countryCode, lat, lon).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("city is already in favorites", err)
		}
		return nil, apperror.NewDatabaseError("failed to create favorite", err)
	}
	return f, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id, userID int) (*Favorite, error) {
	var f Favorite
	query := `SELECT id, user_id, city_name, country_code, lat, lon, created_at
	          FROM favorites WHERE id = $1 AND user_id = $2`
	err := s.db.QueryRow(ctx, query, id, userID).Scan(
		&f.ID, &f.UserID, &f.CityName, &f.CountryCode, &f.Lat, &f.Lon, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("favorite not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get favorite", err)
	}
	return &f, nil
}

func (s *PostgresStore) DeleteByID(ctx context.Context, id, userID int) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM favorites WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete favorite", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("favorite not found", nil)
	}
	return nil
}

func (s *PostgresStore) DeleteByCity(ctx context.Context, userID int, cityName, countryCode string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND city_name = $2 AND country_code = $3`,
		userID, cityName, countryCode,
	)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete favorite", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("favorite not found", nil)
	}
	return nil
}
