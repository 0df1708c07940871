package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/magicunicorn/party/internal/database"
	"github.com/magicunicorn/party/internal/session"
)

// GamesListPage displays all games. It should be wrapped by RSVPRequired.
func GamesListPage(db *sqlx.DB, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, err := database.GetAllGames(r.Context(), db)
		if err != nil {
			slog.ErrorContext(r.Context(), "list games", "err", err)
			RenderErrorPage(w, r, http.StatusInternalServerError, "Something Went Wrong", "We couldn't load the games.")
			return
		}

		_, data := pageData(w, r, sessions, "Games")
		data["Games"] = games
		RenderTemplate(w, r, "games/games_list.html", data)
	}
}
