package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store runs the user queries against postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

type userRow struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
}

func (s *Store) CreateUser(ctx context.Context, u userRow) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Email, u.PasswordHash, u.Name)
	return err
}

func (s *Store) UserByEmail(ctx context.Context, email string) (userRow, error) {
	var u userRow
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, name FROM users WHERE email = $1`,
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name)
	return u, err
}

func (s *Store) UserByID(ctx context.Context, id string) (userRow, error) {
	var u userRow
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, name FROM users WHERE id = $1`,
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name)
	return u, err
}
