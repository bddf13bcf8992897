package auth

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/openshelf/openshelf/internal/config"
	"github.com/openshelf/openshelf/internal/entities"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidEntityType  = errors.New("invalid entity type")
	ErrEntityNotFound     = errors.New("entity not found")
)

// Service issues and resolves session tokens for the three account types.
type Service struct {
	db  *gorm.DB
	cfg config.Auth
}

// NewService creates a new authentication service.
func NewService(db *gorm.DB, cfg config.Auth) *Service {
	return &Service{db: db, cfg: cfg}
}

// TokenTTL returns the configured absolute token lifetime.
func (s *Service) TokenTTL() time.Duration {
	return s.cfg.TokenTTL
}

// BcryptCost returns the configured password hashing cost.
func (s *Service) BcryptCost() int {
	return s.cfg.BcryptCost
}

func modelFor(entityType entities.EntityType) (any, error) {
	switch entityType {
	case entities.EntityTypeUser:
		return &entities.User{}, nil
	case entities.EntityTypePublisher:
		return &entities.Publisher{}, nil
	case entities.EntityTypeAdmin:
		return &entities.Admin{}, nil
	default:
		return nil, ErrInvalidEntityType
	}
}

// IssueToken generates a fresh session token for the entity and persists it
// with an absolute expiry of now + TTL. Any previously issued token for the
// same entity is overwritten and becomes invalid immediately.
func (s *Service) IssueToken(entityID uint, entityType entities.EntityType) (string, error) {
	model, err := modelFor(entityType)
	if err != nil {
		return "", err
	}

	token, err := GenerateSessionToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	expiry := time.Now().Add(s.cfg.TokenTTL)

	result := s.db.Model(model).Where("id = ?", entityID).Updates(map[string]any{
		"session_token": token,
		"token_expiry":  expiry,
	})
	if result.Error != nil {
		return "", fmt.Errorf("failed to save session token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return "", ErrEntityNotFound
	}

	return token, nil
}

// ClearToken drops the entity's session token, ending the session early.
func (s *Service) ClearToken(entityID uint, entityType entities.EntityType) error {
	model, err := modelFor(entityType)
	if err != nil {
		return err
	}
	return s.db.Model(model).Where("id = ?", entityID).Updates(map[string]any{
		"session_token": nil,
		"token_expiry":  nil,
	}).Error
}

// ResolveUser returns the user whose stored token matches and has not
// expired. Expiry is fixed at issue time, resolution never extends it.
func (s *Service) ResolveUser(token string) (*entities.User, error) {
	var user entities.User
	if err := s.resolve(token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ResolvePublisher returns the publisher owning an unexpired matching token.
func (s *Service) ResolvePublisher(token string) (*entities.Publisher, error) {
	var publisher entities.Publisher
	if err := s.resolve(token, &publisher); err != nil {
		return nil, err
	}
	return &publisher, nil
}

// ResolveAdmin returns the admin owning an unexpired matching token.
func (s *Service) ResolveAdmin(token string) (*entities.Admin, error) {
	var admin entities.Admin
	if err := s.resolve(token, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *Service) resolve(token string, dest any) error {
	if token == "" {
		return ErrInvalidToken
	}
	err := s.db.Where("session_token = ? AND token_expiry > ?", token, time.Now()).First(dest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}

// LoginUser verifies user credentials and issues a session token.
func (s *Service) LoginUser(email, password string) (*entities.User, string, error) {
	var user entities.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}
	if err := CheckPassword(password, user.PasswordHash); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID, entities.EntityTypeUser)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// LoginPublisher verifies publisher credentials and issues a session token.
func (s *Service) LoginPublisher(email, password string) (*entities.Publisher, string, error) {
	var publisher entities.Publisher
	err := s.db.Where("email = ?", email).First(&publisher).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find publisher: %w", err)
	}
	if err := CheckPassword(password, publisher.PasswordHash); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(publisher.ID, entities.EntityTypePublisher)
	if err != nil {
		return nil, "", err
	}
	return &publisher, token, nil
}

// LoginAdmin verifies admin credentials and issues a session token.
func (s *Service) LoginAdmin(email, password string) (*entities.Admin, string, error) {
	var admin entities.Admin
	err := s.db.Where("email = ?", email).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find admin: %w", err)
	}
	if err := CheckPassword(password, admin.PasswordHash); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(admin.ID, entities.EntityTypeAdmin)
	if err != nil {
		return nil, "", err
	}
	return &admin, token, nil
}

// PurgeExpiredTokens clears token columns whose expiry has passed. Run
// periodically by the scheduler; resolution already rejects expired tokens,
// this just stops stale secrets from lingering in the tables.
func (s *Service) PurgeExpiredTokens(now time.Time) (int64, error) {
	var purged int64
	for _, model := range []any{&entities.User{}, &entities.Publisher{}, &entities.Admin{}} {
		result := s.db.Model(model).
			Where("session_token IS NOT NULL AND token_expiry <= ?", now).
			Updates(map[string]any{"session_token": nil, "token_expiry": nil})
		if result.Error != nil {
			return purged, result.Error
		}
		purged += result.RowsAffected
	}
	return purged, nil
}
