package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"bhai/internal/models"
	"bhai/internal/storage"
)

const minPasswordLen = 6

// Service owns account registration, credential checks and the current-user
// slot. It never hands out password hashes: the models.User it returns and
// persists to the slot carries profile fields only.
type Service struct {
	store *storage.Store
	log   *zap.Logger
}

func NewService(store *storage.Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

func (s *Service) Register(ctx context.Context, name, email, password string, role models.UserRole) (models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	switch {
	case name == "":
		return models.User{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	case email == "":
		return models.User{}, &ValidationError{Field: "email", Reason: "must not be empty"}
	case password == "":
		return models.User{}, &ValidationError{Field: "password", Reason: "must not be empty"}
	case len([]rune(password)) < minPasswordLen:
		return models.User{}, &ValidationError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", minPasswordLen)}
	}
	if role != models.RolePatient && role != models.RoleDoctor {
		return models.User{}, &ValidationError{Field: "role", Reason: "must be patient or doctor"}
	}
	if _, exists := s.store.AccountByEmail(ctx, email); exists {
		return models.User{}, &ValidationError{Field: "email", Reason: "already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Role:  role,
	}
	s.store.SaveAccount(ctx, storage.Account{User: user, PasswordHash: string(hash)})
	s.store.SaveCurrentUser(ctx, user)
	s.log.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(role)))
	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (models.User, error) {
	account, ok := s.store.AccountByEmail(ctx, strings.TrimSpace(email))
	if !ok {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	s.store.SaveCurrentUser(ctx, account.User)
	s.log.Info("user logged in", zap.String("user_id", account.ID))
	return account.User, nil
}

// CreateAnonymous registers a throwaway patient account so someone can talk
// to the assistant without sharing an identity. Always succeeds.
func (s *Service) CreateAnonymous(ctx context.Context) (models.User, error) {
	user := models.User{
		ID:          uuid.NewString(),
		Name:        "Anonymous User",
		Email:       fmt.Sprintf("anon_%s@anonymous.bhai", randomSuffix()),
		Role:        models.RolePatient,
		IsAnonymous: true,
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(randomSuffix()+randomSuffix()), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	s.store.SaveAccount(ctx, storage.Account{User: user, PasswordHash: string(hash)})
	s.store.SaveCurrentUser(ctx, user)
	s.log.Info("anonymous user created", zap.String("user_id", user.ID))
	return user, nil
}

// Logout clears the current-user slot. Idempotent.
func (s *Service) Logout(ctx context.Context) {
	s.store.ClearCurrentUser(ctx)
}

// CurrentUser returns the persisted session user, if any. Credentials are
// not revalidated here.
func (s *Service) CurrentUser(ctx context.Context) (models.User, bool) {
	return s.store.CurrentUser(ctx)
}

// UserByID resolves a registered user's profile without its credential hash.
func (s *Service) UserByID(ctx context.Context, id string) (models.User, bool) {
	for _, a := range s.store.Accounts(ctx) {
		if a.ID == id {
			return a.User, true
		}
	}
	return models.User{}, false
}

func randomSuffix() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
