package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/smartmeet/internal/common"
	"github.com/dmitrijs2005/smartmeet/internal/server/auth"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrWeakPassword = errors.New("password must be at least 6 characters")
	ErrInactiveUser = errors.New("inactive user")
)

const minPasswordLen = 6

// Service registers and authenticates users and issues access tokens.
type Service struct {
	repo      Repository
	jwtSecret []byte
	tokenTTL  time.Duration
	cost      int
}

func NewService(repo Repository, secretKey string, tokenTTL time.Duration) *Service {
	return &Service{repo: repo, jwtSecret: []byte(secretKey), tokenTTL: tokenTTL, cost: bcrypt.DefaultCost}
}

// WithHashCost sets the bcrypt cost; tests use bcrypt.MinCost.
func (s *Service) WithHashCost(cost int) *Service {
	s.cost = cost
	return s
}

func (s *Service) Register(ctx context.Context, email, fullName, password string) (*User, error) {
	email = strings.TrimSpace(email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, ErrInvalidEmail
	}
	if len([]rune(password)) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, &User{
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: hash,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// Login checks the credentials and returns a fresh access token. Unknown
// emails and wrong passwords both yield common.ErrorUnauthorized.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorUnauthorized
		}
		return "", nil, common.ErrorInternal
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", nil, common.ErrorUnauthorized
	}
	if !user.IsActive {
		return "", nil, ErrInactiveUser
	}

	token, err := auth.GenerateToken(user.Email, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", nil, common.ErrorInternal
	}
	return token, user, nil
}

// UserFromToken resolves the user an access token was issued to.
func (s *Service) UserFromToken(ctx context.Context, token string) (*User, error) {
	email, err := auth.GetSubjectFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	return user, nil
}
