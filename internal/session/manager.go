package session

import (
	"net/http"
	"strings"
)

// DefaultCookieName is used when a Manager is built without a cookie name.
const DefaultCookieName = "party_session"

// Manager loads and saves sessions for HTTP requests.
type Manager struct {
	store      *Store
	signer     *Signer
	cookieName string
}

// NewManager returns a Manager backed by store and signer.
func NewManager(store *Store, signer *Signer, cookieName string) *Manager {
	cookieName = strings.TrimSpace(cookieName)
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &Manager{store: store, signer: signer, cookieName: cookieName}
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// Load returns the session for r. Missing, tampered or expired cookies yield a
// new, unsaved session. Changes to the result are not persisted; use Update
// or Renew to change a visitor's session.
func (m *Manager) Load(r *http.Request) *Session {
	token := m.token(r)
	if token == "" {
		return &Session{}
	}
	sess, ok := m.store.Get(token)
	if !ok {
		return &Session{}
	}
	return sess
}

// Update applies fn to r's session under the store lock, saves it and sets
// its cookie on w.
func (m *Manager) Update(w http.ResponseWriter, r *http.Request, fn func(*Session)) (*Session, error) {
	sess, err := m.store.Update(m.token(r), fn)
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, m.cookie(sess.Token, r.TLS != nil))
	return sess, nil
}

// Renew is Update, but the session moves to a new token and the cookie
// follows it. Call it whenever a session gains access.
func (m *Manager) Renew(w http.ResponseWriter, r *http.Request, fn func(*Session)) (*Session, error) {
	sess, err := m.store.Renew(m.token(r), fn)
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, m.cookie(sess.Token, r.TLS != nil))
	return sess, nil
}

// Commit stores sess and returns the cookie that refers to it.
func (m *Manager) Commit(sess *Session, secure bool) (*http.Cookie, error) {
	if err := m.store.Save(sess); err != nil {
		return nil, err
	}
	return m.cookie(sess.Token, secure), nil
}

// token returns the verified session token carried by r, or "".
func (m *Manager) token(r *http.Request) string {
	c, err := r.Cookie(m.cookieName)
	if err != nil {
		return ""
	}
	token, ok := m.signer.Verify(strings.TrimSpace(c.Value))
	if !ok {
		return ""
	}
	return token
}

func (m *Manager) cookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    m.signer.Sign(token),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
