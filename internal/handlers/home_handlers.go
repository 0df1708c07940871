package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/magicunicorn/party/internal/session"
)

// PartyAddress is only shown to guests who have RSVP'd.
const PartyAddress = "123 Magic Unicorn Way"

// Homepage shows the invitation. Guests who have not RSVP'd see the RSVP
// form; guests who have see the party address instead.
func Homepage(sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, data := pageData(w, r, sessions, "You're Invited!")
		if sess.RSVP {
			data["PartyAddress"] = PartyAddress
		}
		RenderTemplate(w, r, "index.html", data)
	}
}

// pageData loads the visitor's session and builds the template data shared by
// every page. Pending flashes are consumed here.
func pageData(w http.ResponseWriter, r *http.Request, sessions *session.Manager, title string) (*session.Session, map[string]interface{}) {
	sess := sessions.Load(r)
	var flashes []string
	if len(sess.Flashes) > 0 {
		updated, err := sessions.Update(w, r, func(s *session.Session) {
			flashes = s.PopFlashes()
		})
		if err != nil {
			// The flashes will show again next time; not worth failing the page.
			slog.WarnContext(r.Context(), "could not clear flashes", "err", err)
			flashes = sess.Flashes
		} else {
			sess = updated
		}
	}

	data := map[string]interface{}{
		"Title":       title,
		"RSVP":        sess.RSVP,
		"Name":        sess.Name,
		"Flashes":     flashes,
		"CurrentYear": time.Now().Year(),
	}
	return sess, data
}
