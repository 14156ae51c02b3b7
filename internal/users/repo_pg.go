package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, p Profile) error {
	const query = `
INSERT INTO profiles (id, email, password_hash, role, full_name, child_name, age, avatar_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.Email,
		nullableString(p.PasswordHash),
		string(p.Role),
		p.FullName,
		nullableString(p.ChildName),
		nullableInt(p.Age),
		nullableString(p.AvatarURL),
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrEmailTaken
	}
	return err
}

const profileColumns = `id, email, password_hash, role, full_name, child_name, age, avatar_url, created_at, updated_at`

func (r *PGRepo) GetByID(ctx context.Context, profileID string) (Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1 LIMIT 1`
	return scanProfile(r.DB.QueryRowContext(ctx, query, profileID))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE lower(email) = lower($1) LIMIT 1`
	return scanProfile(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) Update(ctx context.Context, p Profile) error {
	const query = `
UPDATE profiles
SET full_name = $2,
    child_name = $3,
    age = $4,
    avatar_url = $5,
    updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.FullName,
		nullableString(p.ChildName),
		nullableInt(p.Age),
		nullableString(p.AvatarURL),
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProfile(row *sql.Row) (Profile, error) {
	var (
		p            Profile
		role         string
		passwordHash sql.NullString
		childName    sql.NullString
		age          sql.NullInt64
		avatarURL    sql.NullString
	)
	err := row.Scan(
		&p.ID,
		&p.Email,
		&passwordHash,
		&role,
		&p.FullName,
		&childName,
		&age,
		&avatarURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	p.Role = Role(role)
	p.PasswordHash = passwordHash.String
	p.ChildName = childName.String
	p.AvatarURL = avatarURL.String
	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	return p, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}
