package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/beandock/coffeeshop-api/internal/domains/users/domain"
	"github.com/beandock/coffeeshop-api/internal/domains/users/ports"
)

const (
	defaultListLimit  = 100
	defaultSessionTTL = 24 * time.Hour
)

// Service exposes user bounded context use cases.
type Service struct {
	repo       ports.Repository
	sessions   ports.SessionStore
	sessionTTL time.Duration
	bcryptCost int
}

type Option func(*Service)

// WithSessionTTL overrides the default session lifetime.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithBcryptCost overrides the default bcrypt work factor.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.bcryptCost = cost }
}

func NewService(repo ports.Repository, sessions ports.SessionStore, opts ...Option) *Service {
	s := &Service{repo: repo, sessions: sessions, sessionTTL: defaultSessionTTL}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	user, err := domain.NewUser(in.Email, in.Username, in.Password, s.bcryptCost)
	if err != nil {
		return nil, mapError(err)
	}
	user.UpdateProfile(in.FullName, in.Phone, in.Address)

	if _, err := s.repo.GetByEmail(ctx, user.Email); err == nil {
		return nil, mapError(ports.ErrEmailTaken)
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	if _, err := s.repo.GetByUsername(ctx, user.Username); err == nil {
		return nil, mapError(ports.ErrUsernameTaken)
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return "", nil, mapError(ports.ErrInvalidCredentials)
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", nil, mapError(ports.ErrInvalidCredentials)
		}
		return "", nil, err
	}
	if !user.CheckPassword(password) {
		return "", nil, mapError(ports.ErrInvalidCredentials)
	}
	if !user.IsActive {
		return "", nil, mapError(ports.ErrInactiveUser)
	}
	token := uuid.NewString()
	if err := s.sessions.Save(ctx, token, user.ID, s.sessionTTL); err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// GetByToken resolves a bearer token to its active user.
func (s *Service) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, mapError(ports.ErrInactiveUser)
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *Service) UpdateUser(ctx context.Context, id int64, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil && *in.Email != user.Email {
		if err := user.SetEmail(*in.Email); err != nil {
			return nil, mapError(err)
		}
		if existing, err := s.repo.GetByEmail(ctx, user.Email); err == nil && existing.ID != id {
			return nil, mapError(ports.ErrEmailTaken)
		} else if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return nil, err
		}
	}
	if in.Username != nil && *in.Username != user.Username {
		if err := user.SetUsername(*in.Username); err != nil {
			return nil, mapError(err)
		}
		if existing, err := s.repo.GetByUsername(ctx, user.Username); err == nil && existing.ID != id {
			return nil, mapError(ports.ErrUsernameTaken)
		} else if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return nil, err
		}
	}
	if in.Password != nil {
		if err := user.SetPassword(*in.Password, s.bcryptCost); err != nil {
			return nil, mapError(err)
		}
	}
	if in.FullName != nil {
		user.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Phone != nil {
		user.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		user.Address = strings.TrimSpace(*in.Address)
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if err := user.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

var _ ports.Service = (*Service)(nil)
