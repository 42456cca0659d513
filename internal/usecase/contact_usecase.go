package usecase

import (
	"context"
	"net/mail"
	"time"
	"unicode/utf8"

	"wow-campus/internal/i18n"
	mailer "wow-campus/internal/infrastructure/mail"
	"wow-campus/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxContactMessageLen = 5000
	maxContactFieldLen   = 200
)

type ContactInput struct {
	Name     string
	Email    string
	Subject  string
	Message  string
	RemoteIP string
}

type ContactUsecase interface {
	Submit(ctx context.Context, in ContactInput, loc i18n.Locale) (uuid.UUID, error)
}

type Mailer interface {
	Send(ctx context.Context, m mailer.Message) (string, error)
}

// ContactMail routes inquiry notifications. A nil Sender or empty To turns
// notifications off.
type ContactMail struct {
	Sender Mailer
	From   string
	To     []string
}

func (m ContactMail) enabled() bool { return m.Sender != nil && len(m.To) > 0 }

type Contact struct {
	contacts repository.ContactRepository
	mail     ContactMail
	logger   *zap.Logger
	newID    func() uuid.UUID
	now      func() time.Time
}

func NewContactUsecase(contacts repository.ContactRepository, notify ContactMail, logger *zap.Logger) *Contact {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Contact{contacts: contacts, mail: notify, logger: logger, newID: uuid.New, now: time.Now}
}

// Submit stores an inquiry, notifies staff by mail and returns its reference
// id. The stored row is the record; a failed notification is only logged.
func (u *Contact) Submit(ctx context.Context, in ContactInput, loc i18n.Locale) (uuid.UUID, error) {
	in.Name, in.Email, in.Subject, in.Message = trim(in.Name), trim(in.Email), trim(in.Subject), trim(in.Message)

	if in.Name == "" || in.Email == "" || in.Subject == "" || in.Message == "" {
		return uuid.Nil, invalid("모든 필드를 입력해주세요.")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return uuid.Nil, invalid("올바른 이메일 형식을 입력해주세요.")
	}
	if utf8.RuneCountInString(in.Name) > maxContactFieldLen || utf8.RuneCountInString(in.Subject) > maxContactFieldLen {
		return uuid.Nil, invalid("입력값이 너무 깁니다.")
	}
	if utf8.RuneCountInString(in.Message) > maxContactMessageLen {
		return uuid.Nil, invalid("문의 내용은 5000자 이하여야 합니다.")
	}

	saved, err := u.contacts.Create(ctx, repository.ContactInquiry{
		ID:       u.newID(),
		Name:     in.Name,
		Email:    in.Email,
		Subject:  in.Subject,
		Message:  in.Message,
		Locale:   string(loc),
		RemoteIP: in.RemoteIP,
	})
	if err != nil {
		u.logger.Error("store contact inquiry", zap.Error(err))
		return uuid.Nil, ErrInternal
	}
	u.logger.Info("contact inquiry received", zap.String("reference", saved.ID.String()), zap.String("subject", saved.Subject))
	u.notify(ctx, saved)
	return saved.ID, nil
}

func (u *Contact) notify(ctx context.Context, in repository.ContactInquiry) {
	if !u.mail.enabled() {
		u.logger.Debug("contact mail disabled", zap.String("reference", in.ID.String()))
		return
	}
	msg, err := inquiryMessage(in, u.mail.From, u.mail.To, u.now())
	if err != nil {
		u.logger.Error("render contact mail", zap.String("reference", in.ID.String()), zap.Error(err))
		return
	}
	id, err := u.mail.Sender.Send(ctx, msg)
	if err != nil {
		u.logger.Warn("send contact mail", zap.String("reference", in.ID.String()), zap.Error(err))
		return
	}
	u.logger.Info("contact mail sent", zap.String("reference", in.ID.String()), zap.String("message_id", id))
}
