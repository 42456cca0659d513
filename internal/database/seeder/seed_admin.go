package seeder

import (
	"context"
	"fmt"
	"strings"

	"wow-campus/internal/database"

	"golang.org/x/crypto/bcrypt"
)

// AdminSeeder creates the platform administrator when no user owns Email.
type AdminSeeder struct {
	Email       string
	Password    string
	DisplayName string
}

func (AdminSeeder) Name() string { return "admin" }

func (AdminSeeder) RequiredColumns() []TableColumns {
	return []TableColumns{
		{Table: "users", Columns: []string{"id", "email", "password_hash", "user_type", "status", "name"}},
	}
}

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	email := strings.ToLower(strings.TrimSpace(s.Email))
	if email == "" || s.Password == "" {
		return fmt.Errorf("admin email and password are required")
	}
	name := strings.TrimSpace(s.DisplayName)
	if name == "" {
		name = "관리자"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = db.Exec(ctx,
		`INSERT INTO users (email, password_hash, user_type, status, name)
		 SELECT $1, $2, 'admin', 'approved', $3
		 WHERE NOT EXISTS (SELECT 1 FROM users WHERE lower(email) = $1)`,
		email, string(hash), name,
	)
	return err
}
