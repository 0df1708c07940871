package handlers

import (
	"io/fs"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/magicunicorn/party/internal/session"
)

// NewRouter wires the party routes. LoadTemplates must have been called.
func NewRouter(db *sqlx.DB, sessions *session.Manager, static fs.FS) *http.ServeMux {
	mux := http.NewServeMux()

	// Static File Server
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	homepage := Homepage(sessions)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			RenderErrorPage(w, r, http.StatusNotFound, "Page Not Found", "The page you are looking for does not exist.")
			return
		}
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			homepage(w, r)
		default:
			RenderErrorPage(w, r, http.StatusMethodNotAllowed, "Method Not Allowed", "This method is not supported for /.")
		}
	})

	submitRSVP := SubmitRSVP(db, sessions)
	mux.HandleFunc("/rsvp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			RenderErrorPage(w, r, http.StatusMethodNotAllowed, "Method Not Allowed", "RSVP requires POST method.")
			return
		}
		submitRSVP(w, r)
	})

	gamesList := RSVPRequired(sessions, GamesListPage(db, sessions))
	mux.HandleFunc("/games", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			gamesList(w, r)
		default:
			RenderErrorPage(w, r, http.StatusMethodNotAllowed, "Method Not Allowed", "This method is not supported for /games.")
		}
	})

	return mux
}
