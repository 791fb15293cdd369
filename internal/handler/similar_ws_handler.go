package handler

import (
	"net/http"
	"time"

	"booksim/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func writeWS(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, b)
}

// @Summary Nearest books over WebSocket
// @Description Sends a start message, one message per neighbor in rank order, then a done message with the full result
// @Tags books
// @Security BearerAuth
// @Param isbn path string true "ISBN"
// @Param n query int false "number of neighbors (default 10, max 1000)"
// @Param metric query string false "ranking metric (default euclidean)"
// @Param p query number false "minkowski order"
// @Param overlap_only query bool false "drop books without common raters"
// @Param refresh query bool false "skip the Redis cache"
// @Success 101 {string} string
// @Router /books/{isbn}/ws/similar [get]
func (h *QueryHandler) SimilarBooksWS(w http.ResponseWriter, r *http.Request) {
	req, err := similarRequest(r, chi.URLParam(r, "isbn"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		return
	}
	defer conn.Close()
	logger := logging.Component("ws").With().
		Str("sub", SubjectFromContext(r.Context())).
		Str("isbn", req.ID).
		Logger()

	send := func(v any) bool {
		if err := writeWS(conn, v); err != nil {
			logger.Debug().Err(err).Msg("client went away")
			return false
		}
		return true
	}

	if !send(map[string]any{"type": "start", "isbn": req.ID, "n": req.N}) {
		return
	}

	doc, err := h.svc.SimilarBooks(r.Context(), req)
	if err != nil {
		send(map[string]any{"type": "error", "error": err.Error()})
		return
	}

	for i, nb := range doc.Neighbors {
		if !send(map[string]any{"type": "neighbor", "rank": i + 1, "neighbor": nb}) {
			return
		}
	}

	send(map[string]any{
		"type":        "done",
		"result":      doc,
		"generatedAt": time.Now().UTC(),
	})
}
