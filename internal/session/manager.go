package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/KAKADIVA/testePFI/internal/models"
	"github.com/KAKADIVA/testePFI/internal/util"

	"gorm.io/gorm"
)

// ErrNoSession is returned for unknown and expired tokens alike.
// Callers must branch on it rather than on the token's history.
var ErrNoSession = errors.New("sessão inexistente ou expirada")

const tokenBytes = 32

// Manager owns the durable session table. One record per token; an
// identity may hold any number of concurrent sessions.
type Manager struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// New creates a Manager with a fixed session lifetime. The lifetime is
// counted from creation and is not refreshed on activity.
func New(db *gorm.DB, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Manager{db: db, ttl: ttl, now: time.Now}
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create persists a new session for the user and returns it. The token
// encodes 32 random bytes; collisions are not a practical concern.
func (m *Manager) Create(userID uint) (*models.Session, error) {
	token, err := util.RandomToken(tokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	now := m.now()
	s := models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(m.ttl),
		CreatedAt: now,
	}
	if err := m.db.Create(&s).Error; err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return &s, nil
}

// Resolve maps a token to its user. Unknown tokens, expired sessions and
// sessions whose user has vanished all yield ErrNoSession. Expired rows
// are removed lazily here.
func (m *Manager) Resolve(token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	var s models.Session
	if err := m.db.Where("token = ?", token).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	if !m.now().Before(s.ExpiresAt) {
		_ = m.db.Delete(&models.Session{}, "token = ?", token).Error
		return nil, ErrNoSession
	}

	var user models.User
	if err := m.db.First(&user, s.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("load session user: %w", err)
	}
	return &user, nil
}

// Destroy removes the session. Destroying an unknown token is not an error.
func (m *Manager) Destroy(token string) error {
	if token == "" {
		return nil
	}
	if err := m.db.Delete(&models.Session{}, "token = ?", token).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
