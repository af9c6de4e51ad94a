package auth

import (
	"context"
	"errors"
	"fmt"
	"log"

	"crediwallet/internal/models"
	"crediwallet/internal/repositories"
	"crediwallet/internal/utils"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrRegistrationFailed = errors.New("registration failed")
)

// Notifier receives account lifecycle events. Calls are best-effort.
type Notifier interface {
	UserRegistered(ctx context.Context, user *models.User)
}

// TokenPair carries the two tokens issued on login and registration.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Service interface {
	Register(ctx context.Context, input models.CreateUserInput) (*models.User, TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.User, TokenPair, error)
	RefreshTokens(refreshToken string) (TokenPair, error)
}

type service struct {
	userRepo repositories.UserRepository
	notifier Notifier
}

// NewService creates the auth service. The notifier may be nil.
func NewService(userRepo repositories.UserRepository, notifier Notifier) Service {
	if userRepo == nil {
		panic("user repository is required")
	}
	return &service{
		userRepo: userRepo,
		notifier: notifier,
	}
}

func (s *service) Register(ctx context.Context, input models.CreateUserInput) (*models.User, TokenPair, error) {
	if _, err := s.userRepo.GetByEmail(input.Email, false); err == nil {
		return nil, TokenPair{}, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, TokenPair{}, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	accountNumber, err := s.userRepo.GenerateAccountNumber()
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	user := &models.User{
		Name:          input.Name,
		Email:         input.Email,
		Password:      string(hashed),
		AccountNumber: accountNumber,
		Balance:       decimal.Zero,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, TokenPair{}, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, TokenPair{}, err
	}

	if s.notifier != nil {
		s.notifier.UserRegistered(ctx, user)
	}

	out := *user
	out.Sanitize()
	return &out, pair, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*models.User, TokenPair, error) {
	user, err := s.userRepo.GetByEmail(email, true)
	if err != nil {
		log.Printf("login failed: no user for email %s", email)
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("login failed: bad password for user %d", user.ID)
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, TokenPair{}, err
	}

	user.Sanitize()
	return user, pair, nil
}

func (s *service) RefreshTokens(refreshToken string) (TokenPair, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *service) issueTokens(user *models.User) (TokenPair, error) {
	access, refresh, err := utils.GenerateTokens(&models.UserClaims{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	})
	if err != nil {
		log.Println("error generating tokens:", err)
		return TokenPair{}, errors.New("error generating tokens")
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
