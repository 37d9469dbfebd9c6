package serviceImp

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lcorrigan704/client-management-system/entities"
	"github.com/lcorrigan704/client-management-system/pkg/auth/service"
	"github.com/lcorrigan704/client-management-system/pkg/versioning"
)

type authService struct {
	db  *gorm.DB
	ttl time.Duration
}

func New(db *gorm.DB, sessionTTL time.Duration) service.AuthService {
	return &authService{db: db, ttl: sessionTTL}
}

func (s *authService) Login(email, password string) (string, *entities.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, versioning.ErrInvalidArgument
	}
	var u entities.User
	err := s.db.Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, versioning.ErrNotFound
	}
	if err != nil {
		return "", nil, err
	}
	if !u.IsActive {
		return "", nil, versioning.ErrInvalidState
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, versioning.ErrNotFound
	}
	token := uuid.NewString()
	sess := entities.UserSession{
		UserID:    u.ID,
		TokenHash: hashToken(token),
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.db.Create(&sess).Error; err != nil {
		return "", nil, err
	}
	return token, &u, nil
}

func (s *authService) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.db.Where("token_hash = ?", hashToken(token)).
		Delete(&entities.UserSession{}).Error
}

func (s *authService) Authenticate(token string) (*entities.User, error) {
	if token == "" {
		return nil, versioning.ErrNotFound
	}
	var sess entities.UserSession
	err := s.db.Preload("User").
		Where("token_hash = ?", hashToken(token)).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, versioning.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if time.Now().After(sess.ExpiresAt) {
		// Expired sessions are reaped on sight.
		s.db.Delete(&entities.UserSession{}, sess.ID)
		return nil, versioning.ErrNotFound
	}
	if !sess.User.IsActive {
		return nil, versioning.ErrNotFound
	}
	return &sess.User, nil
}

func (s *authService) SeedAdmin(email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}
	var count int64
	if err := s.db.Model(&entities.User{}).
		Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Create(&entities.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         "admin",
		IsActive:     true,
	}).Error
}

func (s *authService) SearchUsers(query string) ([]entities.User, error) {
	var out []entities.User
	q := s.db.Where("is_active = ?", true).Order("email ASC").Limit(20)
	if query = strings.TrimSpace(query); query != "" {
		q = q.Where("email LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	err := q.Find(&out).Error
	return out, err
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
