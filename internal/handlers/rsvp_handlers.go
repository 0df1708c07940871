package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/magicunicorn/party/internal/database"
	"github.com/magicunicorn/party/internal/models"
	"github.com/magicunicorn/party/internal/session"
)

// Flash messages shown after RSVP-related redirects.
const (
	FlashRSVPThanks   = "Yay! Thanks for RSVPing."
	FlashRSVPRequired = "Please RSVP to see the games."
)

// SubmitRSVP records the guest's reply, unlocks the party details for their
// session and redirects to the homepage.
func SubmitRSVP(db *sqlx.DB, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			RenderErrorPage(w, r, http.StatusBadRequest, "Bad Request", "We couldn't read your RSVP.")
			return
		}
		name := strings.TrimSpace(r.FormValue("name"))
		email := strings.TrimSpace(r.FormValue("email"))

		rsvp, err := database.CreateRSVP(r.Context(), db, &models.RSVP{Name: name, Email: email})
		if err != nil {
			slog.ErrorContext(r.Context(), "record rsvp", "err", err)
			RenderErrorPage(w, r, http.StatusInternalServerError, "Something Went Wrong", "We couldn't save your RSVP. Please try again.")
			return
		}

		// The session gains access here, so it moves to a new token.
		_, err = sessions.Renew(w, r, func(s *session.Session) {
			// Earlier notices like FlashRSVPRequired no longer apply.
			s.PopFlashes()
			s.RSVP = true
			s.Name = name
			s.AddFlash(FlashRSVPThanks)
		})
		if err != nil {
			slog.ErrorContext(r.Context(), "save session", "err", err)
			RenderErrorPage(w, r, http.StatusInternalServerError, "Something Went Wrong", "We couldn't save your RSVP. Please try again.")
			return
		}

		slog.InfoContext(r.Context(), "rsvp received", "rsvp_id", rsvp.ID)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// RSVPRequired sends visitors who have not RSVP'd back to the homepage.
func RSVPRequired(sessions *session.Manager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions.Load(r).RSVP {
			next.ServeHTTP(w, r)
			return
		}
		_, err := sessions.Update(w, r, func(s *session.Session) {
			if !s.RSVP {
				s.AddFlash(FlashRSVPRequired)
			}
		})
		if err != nil {
			slog.WarnContext(r.Context(), "save session", "err", err)
		}
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
