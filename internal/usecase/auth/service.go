package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"wow-campus/internal/domain/user"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")

	ErrAccountPending   = errors.New("account pending approval")
	ErrAccountSuspended = errors.New("account suspended")
	ErrAccountRejected  = errors.New("account rejected")
)

// InputError is a validation failure with the message shown to the user.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

const (
	minPasswordLen = 6
	maxPasswordLen = 128
	maxNameLen     = 100
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\-+\s()]+$`)
)

type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	Name            string
	UserType        string
	Phone           string
	Location        string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	users user.Repository
	cost  int
	now   func() time.Time
}

func NewService(users user.Repository) *Service {
	return &Service{users: users, cost: bcrypt.DefaultCost, now: time.Now}
}

// Register validates the sign-up form, hashes the password and creates the
// account together with its type-specific profile. New accounts are approved
// immediately.
func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	typ, err := validateRegister(in)
	if err != nil {
		return user.User{}, err
	}
	email := normalizeEmail(in.Email)

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := HashPassword(in.Password, s.cost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	created, err := s.users.CreateWithProfile(ctx, user.User{
		Email:        email,
		PasswordHash: hash,
		UserType:     typ,
		Status:       user.StatusApproved,
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
	}, user.ProfileSeed{Location: strings.TrimSpace(in.Location)})
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.User{}, &InputError{Message: "이메일은 필수 입력 항목입니다."}
	}
	if !emailPattern.MatchString(email) {
		return user.User{}, &InputError{Message: "올바른 이메일 형식을 입력해주세요."}
	}
	if in.Password == "" {
		return user.User{}, &InputError{Message: "비밀번호는 필수 입력 항목입니다."}
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	if err := CheckStatus(u.Status); err != nil {
		return user.User{}, err
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, u.ID, now); err != nil {
		return user.User{}, ErrInternal
	}
	u.LastLoginAt = &now

	return sanitizeUser(u), nil
}

// CheckStatus maps a non-approved account status to its login error.
func CheckStatus(st user.Status) error {
	switch st {
	case user.StatusApproved:
		return nil
	case user.StatusPending:
		return ErrAccountPending
	case user.StatusSuspended:
		return ErrAccountSuspended
	case user.StatusRejected:
		return ErrAccountRejected
	default:
		return ErrAccountPending
	}
}

func HashPassword(pw string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func validateRegister(in RegisterInput) (user.Type, error) {
	email := strings.TrimSpace(in.Email)
	switch {
	case email == "":
		return "", &InputError{Message: "이메일은 필수 입력 항목입니다."}
	case !emailPattern.MatchString(email):
		return "", &InputError{Message: "올바른 이메일 형식을 입력해주세요."}
	}

	pwLen := utf8.RuneCountInString(in.Password)
	switch {
	case in.Password == "":
		return "", &InputError{Message: "비밀번호는 필수 입력 항목입니다."}
	case pwLen < minPasswordLen:
		return "", &InputError{Message: "비밀번호는 최소 6자 이상이어야 합니다."}
	case pwLen > maxPasswordLen:
		return "", &InputError{Message: "비밀번호는 128자 이하여야 합니다."}
	}
	if in.Password != in.ConfirmPassword {
		return "", &InputError{Message: "비밀번호와 비밀번호 확인이 일치하지 않습니다."}
	}

	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return "", &InputError{Message: "이름은 필수 입력 항목입니다."}
	case utf8.RuneCountInString(name) > maxNameLen:
		return "", &InputError{Message: "이름은 100자 이하여야 합니다."}
	}

	typ, ok := user.ParseRegistrableType(in.UserType)
	if !ok {
		return "", &InputError{Message: "올바른 사용자 유형을 선택해주세요."}
	}

	if strings.TrimSpace(in.Location) == "" {
		return "", &InputError{Message: "지역 선택은 필수입니다."}
	}

	if phone := strings.TrimSpace(in.Phone); phone != "" && !phonePattern.MatchString(phone) {
		return "", &InputError{Message: "올바른 전화번호 형식을 입력해주세요."}
	}

	return typ, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
