// Package auth handles the director session: credential check, token issue
// and at-most-once session-change notifications.
package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"avisportal/internal/repo"
	"avisportal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// DirectorStore looks up director accounts.
type DirectorStore interface {
	GetDirecteurByEmail(ctx context.Context, email string) (*models.Directeur, error)
}

// Session is an authenticated director session.
type Session struct {
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Manager struct {
	store  DirectorStore
	secret []byte

	mu        sync.Mutex
	current   *Session
	listeners []func(*Session)
}

func NewManager(store DirectorStore, secret []byte) *Manager {
	return &Manager{store: store, secret: secret}
}

// SignIn checks the credentials and installs a new current session. Wrong
// email and wrong password are indistinguishable to the caller.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*Session, error) {
	invalid := repo.NewError(repo.CategoryInvalidCredentials, "incorrect email or password")

	d, err := m.store.GetDirecteurByEmail(ctx, email)
	if err != nil {
		return nil, invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(password)); err != nil {
		return nil, invalid
	}

	expires := time.Now().Add(tokenTTL)
	claims := jwt.MapClaims{
		"email": d.Email,
		"exp":   expires.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, repo.Classify(err, "cannot issue a session token")
	}

	session := &Session{Email: d.Email, Token: token, ExpiresAt: expires}
	m.setCurrent(session)
	return session, nil
}

// SignOut clears the current session.
func (m *Manager) SignOut() {
	m.setCurrent(nil)
}

// Current returns the current session, or nil when signed out.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// OnChange registers a listener fired at most once per actual session change.
func (m *Manager) OnChange(fn func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) setCurrent(s *Session) {
	m.mu.Lock()
	if sameSession(m.current, s) {
		m.mu.Unlock()
		return
	}
	m.current = s
	listeners := append(([]func(*Session))(nil), m.listeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
}

func sameSession(a, b *Session) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Email == b.Email && a.Token == b.Token
}

// ParseToken validates a bearer token and returns the director email.
func (m *Manager) ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", repo.NewError(repo.CategoryInvalidCredentials, "invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", repo.NewError(repo.CategoryInvalidCredentials, "invalid session token")
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", repo.NewError(repo.CategoryInvalidCredentials, "invalid session token")
	}
	return email, nil
}
