package session

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"photo-gallery/internal/auth"
	"photo-gallery/internal/models"

	"github.com/jaevor/go-nanoid"
)

var ErrNoSession = errors.New("no active session")

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID    int64
	Username  string
	SessionID string
}

type Options struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

type Manager struct {
	store      Store
	opts       Options
	generateID func() string
}

func NewManager(store Store, opts Options) (*Manager, error) {
	if opts.Secret == "" {
		return nil, errors.New("session secret is required")
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.CookieName == "" {
		opts.CookieName = "session"
	}

	generateID, err := nanoid.Standard(40)
	if err != nil {
		return nil, err
	}

	return &Manager{store: store, opts: opts, generateID: generateID}, nil
}

func (m *Manager) CookieName() string {
	return m.opts.CookieName
}

// Start creates a session for user and sets the session cookie on w.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, r *http.Request, user *models.User) (*models.Session, error) {
	now := time.Now().UTC()
	session := &models.Session{
		ID:        m.generateID(),
		UserID:    user.ID,
		UserAgent: r.UserAgent(),
		ClientIP:  clientIP(r),
		CreatedAt: now,
		ExpiresAt: now.Add(m.opts.TTL),
	}

	token, err := auth.GenerateSessionToken(session.ID, user.ID, user.Username, session.ExpiresAt, m.opts.Secret)
	if err != nil {
		return nil, err
	}

	if err := m.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.opts.TTL / time.Second),
	})

	return session, nil
}

// Resolve returns the identity bound to the request's session cookie, or
// ErrNoSession when there is none or it is no longer valid.
func (m *Manager) Resolve(r *http.Request) (Identity, error) {
	cookie, err := r.Cookie(m.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return Identity{}, ErrNoSession
	}

	claims, err := auth.VerifySessionToken(cookie.Value, m.opts.Secret)
	if err != nil {
		return Identity{}, ErrNoSession
	}

	session, err := m.store.GetSession(r.Context(), claims.SessionID)
	if err != nil {
		return Identity{}, err
	}
	if session == nil || session.UserID != claims.UserID || session.Expired(time.Now()) {
		return Identity{}, ErrNoSession
	}

	return Identity{
		UserID:    session.UserID,
		Username:  claims.Username,
		SessionID: session.ID,
	}, nil
}

// End deletes the session and expires the cookie.
func (m *Manager) End(ctx context.Context, w http.ResponseWriter, id Identity) error {
	if err := m.store.DeleteSession(ctx, id.SessionID); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	return nil
}

// RunJanitor deletes expired sessions every interval until ctx is done. It
// returns immediately for stores that expire sessions on their own.
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	sweeper, ok := m.store.(expiredSessionSweeper)
	if !ok || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sweeper.DeleteExpiredSessions(ctx)
			if err != nil {
				log.Printf("WARN: failed to delete expired sessions: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("Deleted %d expired sessions", n)
			}
		}
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
