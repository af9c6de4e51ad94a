package statement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crediwallet/internal/models"
	"crediwallet/internal/repositories"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidDateRange = errors.New("invalid date range: from must not be after to")
	ErrGenerationFailed = errors.New("statement generation failed")
)

// Statement is a rendered-ready view of one account over a period.
type Statement struct {
	User    *models.User
	From    time.Time
	To      time.Time
	Entries []models.LedgerEntry
	Metrics Metrics
}

// Generator renders a statement to a file and returns its path.
type Generator interface {
	Generate(st *Statement) (string, error)
}

// Service builds statements and hands them to the configured generator.
type Service interface {
	Build(ctx context.Context, userID uint, from, to time.Time) (*Statement, error)
	GenerateFile(ctx context.Context, userID uint, from, to time.Time) (string, *Statement, error)
}

type service struct {
	users  repositories.UserRepository
	ledger repositories.LedgerRepository
	gen    Generator
}

// NewService creates the statement service.
func NewService(users repositories.UserRepository, ledger repositories.LedgerRepository, gen Generator) Service {
	if users == nil || ledger == nil {
		panic("user and ledger repositories are required")
	}
	return &service{users: users, ledger: ledger, gen: gen}
}

func (s *service) Build(ctx context.Context, userID uint, from, to time.Time) (*Statement, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	entries, _, err := s.ledger.ListPaginated(repositories.LedgerQuery{
		UserID: userID,
		From:   from,
		To:     to,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidDateRange) {
			return nil, ErrInvalidDateRange
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return &Statement{
		User:    user,
		From:    from,
		To:      to,
		Entries: entries,
		Metrics: ComputeMetrics(entries),
	}, nil
}

func (s *service) GenerateFile(ctx context.Context, userID uint, from, to time.Time) (string, *Statement, error) {
	if s.gen == nil {
		return "", nil, fmt.Errorf("%w: no generator configured", ErrGenerationFailed)
	}
	st, err := s.Build(ctx, userID, from, to)
	if err != nil {
		return "", nil, err
	}
	path, err := s.gen.Generate(st)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return path, st, nil
}
