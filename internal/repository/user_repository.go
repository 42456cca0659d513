package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wow-campus/internal/database"
	"wow-campus/internal/domain/user"
)

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userSelect = `
SELECT id, email, password_hash, user_type, status, name, COALESCE(phone, ''),
       created_at, updated_at, last_login_at
FROM users`

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var typ, status string
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &typ, &status, &u.Name, &u.Phone,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt,
	)
	if err != nil {
		return user.User{}, err
	}
	u.UserType = user.Type(typ)
	u.Status = user.Status(status)
	return u, nil
}

// CreateWithProfile inserts the account and the profile row that matches its
// type. Agents get an agency row named after the account.
func (r *PostgresUserRepository) CreateWithProfile(ctx context.Context, u user.User, seed user.ProfileSeed) (user.User, error) {
	var id int64
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		err := tx.QueryRow(ctx, `
INSERT INTO users (email, password_hash, user_type, status, name, phone)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
			u.Email, u.PasswordHash, string(u.UserType), string(u.Status), u.Name, nullString(u.Phone),
		).Scan(&id)
		if err != nil {
			if isUniqueViolation(err) {
				return user.ErrEmailTaken
			}
			return err
		}

		switch u.UserType {
		case user.TypeCompany:
			_, err = tx.Exec(ctx, `INSERT INTO companies (user_id, company_name, address) VALUES ($1, $2, $3)`,
				id, u.Name, nullString(seed.Location))
		case user.TypeJobseeker:
			_, err = tx.Exec(ctx, `INSERT INTO jobseekers (user_id, first_name, preferred_location, skills) VALUES ($1, $2, $3, '[]')`,
				id, u.Name, nullString(seed.Location))
		case user.TypeAgent:
			_, err = tx.Exec(ctx, `INSERT INTO agents (user_id, agency_name) VALUES ($1, $2)`, id, u.Name)
		}
		if err != nil {
			return fmt.Errorf("create %s profile: %w", u.UserType, err)
		}
		return nil
	})
	if err != nil {
		return user.User{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, userSelect+` WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, userSelect+` WHERE lower(email) = lower($1)`, email))
	if err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`, email).Scan(&exists)
	return exists, err
}

func (r *PostgresUserRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login_at = $1 WHERE id = $2`, at, id)
	return err
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id int64, name, phone *string) (user.User, error) {
	var s setBuilder
	if name != nil {
		s.set("name", strings.TrimSpace(*name))
	}
	if phone != nil {
		s.set("phone", nullString(*phone))
	}
	if s.empty() {
		return r.GetByID(ctx, id)
	}

	n, err := r.db.Exec(ctx, `UPDATE users SET `+s.clause()+` WHERE id = `+s.next(id), s.args...)
	if err != nil {
		return user.User{}, err
	}
	if n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresUserRepository) UpdateStatus(ctx context.Context, id int64, status user.Status) error {
	n, err := r.db.Exec(ctx, `UPDATE users SET status = $1, updated_at = now() WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	n, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, hash, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) List(ctx context.Context, f user.ListFilter) ([]user.User, int, error) {
	limit, offset := clampPage(f.Limit, f.Offset)

	var w whereBuilder
	if f.UserType != "" {
		w.add("user_type = ?", string(f.UserType))
	}
	if f.Status != "" {
		w.add("status = ?", string(f.Status))
	}
	w.addILike([]string{"name", "email"}, f.Keyword)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM users`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := userSelect + w.sql() + fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT %s OFFSET %s", w.next(limit), w.next(offset))
	rows, err := r.db.Query(ctx, q, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
