package user

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"crediwallet/internal/models"
	"crediwallet/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrRestrictedField = errors.New("field cannot be updated")
	ErrUnknownField    = errors.New("unknown field")
	ErrNoFields        = errors.New("no fields to update")
	ErrOperationFailed = errors.New("user operation failed")
)

// Fields the profile update endpoint accepts. Email and account number
// are identity fields and stay immutable after registration.
var (
	updatableFields  = map[string]bool{"name": true, "password": true}
	restrictedFields = map[string]bool{"email": true, "account_number": true}
)

type Service interface {
	Get(ctx context.Context, id uint) (*models.User, error)
	GetByAccountNumber(ctx context.Context, number string) (*models.User, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error

	SetBlocked(ctx context.Context, id uint, blocked bool) error
	SetAdmin(ctx context.Context, id uint, admin bool) error
}

type service struct {
	userRepo repositories.UserRepository
}

// NewService creates the user profile service.
func NewService(userRepo repositories.UserRepository) Service {
	if userRepo == nil {
		panic("user repository is required")
	}
	return &service{userRepo: userRepo}
}

func (s *service) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, s.mapErr(err)
	}
	user.Sanitize()
	return user, nil
}

// GetByAccountNumber returns a sanitized public view, used by the
// transfer UX to confirm a recipient before sending money.
func (s *service) GetByAccountNumber(ctx context.Context, number string) (*models.User, error) {
	user, err := s.userRepo.GetByAccountNumber(number)
	if err != nil {
		return nil, s.mapErr(err)
	}
	user.Sanitize()
	return user, nil
}

func (s *service) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return ErrNoFields
	}

	var bad []string
	for name := range fields {
		switch {
		case restrictedFields[name]:
			return fmt.Errorf("%w: %s", ErrRestrictedField, name)
		case !updatableFields[name]:
			bad = append(bad, name)
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(bad, ", "))
	}

	if raw, ok := fields["password"]; ok {
		plain, ok := raw.(string)
		if !ok || plain == "" {
			return fmt.Errorf("%w: password", ErrUnknownField)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrOperationFailed, err)
		}
		fields["password"] = string(hashed)
	}

	return s.mapErr(s.userRepo.UpdateFields(id, fields))
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.mapErr(s.userRepo.Delete(id))
}

func (s *service) SetBlocked(ctx context.Context, id uint, blocked bool) error {
	return s.mapErr(s.userRepo.UpdateFields(id, map[string]interface{}{"is_blocked": blocked}))
}

func (s *service) SetAdmin(ctx context.Context, id uint, admin bool) error {
	return s.mapErr(s.userRepo.UpdateFields(id, map[string]interface{}{"is_admin": admin}))
}

func (s *service) mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrUserNotFound):
		return ErrUserNotFound
	default:
		return fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
}
