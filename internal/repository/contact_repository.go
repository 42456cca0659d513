package repository

import (
	"context"
	"time"

	"wow-campus/internal/database"

	"github.com/google/uuid"
)

type ContactInquiry struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Subject   string
	Message   string
	Locale    string
	RemoteIP  string
	CreatedAt time.Time
}

type ContactRepository interface {
	Create(ctx context.Context, in ContactInquiry) (ContactInquiry, error)
}

type PostgresContactRepository struct {
	db database.DB
}

func NewPostgresContactRepository(db database.DB) *PostgresContactRepository {
	return &PostgresContactRepository{db: db}
}

func (r *PostgresContactRepository) Create(ctx context.Context, in ContactInquiry) (ContactInquiry, error) {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx, `
INSERT INTO contact_inquiries (id, name, email, subject, message, locale, remote_ip)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING created_at`,
		in.ID, in.Name, in.Email, in.Subject, in.Message, in.Locale, nullString(in.RemoteIP),
	).Scan(&in.CreatedAt)
	if err != nil {
		return ContactInquiry{}, err
	}
	return in, nil
}
