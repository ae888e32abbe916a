package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rowanvale/usersvc/internal/domain/user"
	"github.com/rowanvale/usersvc/internal/observability"
)

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *UsersRepo) Create(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	var u user.User

	err := r.observe("users.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO users (name, email)
			 VALUES ($1, $2)
			 RETURNING id, name, email, created_at`,
			req.Name, req.Email,
		).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt)
	})

	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrDuplicateEmail
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, name, email, created_at FROM users WHERE id = $1`,
			id,
		).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) Update(ctx context.Context, id int64, req user.UpdateUserRequest) (user.User, error) {
	var u user.User

	err := r.observe("users.update", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE users
				SET name = $2,
						email = $3
			WHERE id = $1
			RETURNING id, name, email, created_at`,
			id, req.Name, req.Email,
		).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt)
	})

	if err != nil {
		// if there are no rows matching the id
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		if isUniqueViolation(err) {
			return user.User{}, user.ErrDuplicateEmail
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id int64) (user.User, error) {
	var u user.User

	err := r.observe("users.delete", func() error {
		return r.pool.QueryRow(ctx,
			`DELETE FROM users WHERE id = $1
			 RETURNING id, name, email, created_at`,
			id,
		).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

// isUniqueViolation reports whether err carries the Postgres duplicate-key
// code. The handler layer only ever sees the domain sentinel.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
