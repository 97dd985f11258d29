// bot/router.go
package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pokerbot/bot/game"
	"pokerbot/bot/stats"
	"pokerbot/bot/store"
)

type sessionView struct {
	Session store.Session `json:"session"`
	Stats   stats.Summary `json:"stats"`
}

func Router(db store.Reader, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLogger(&logFormatter{logger}))

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Get("/api/sessions/latest", func(w http.ResponseWriter, r *http.Request) {
		s, err := db.LatestSession(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		serveSession(w, r, db, s)
	})

	r.Get("/api/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad session id"})
			return
		}
		s, err := db.GetSession(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		serveSession(w, r, db, s)
	})

	return r
}

func serveSession(w http.ResponseWriter, r *http.Request, db store.Reader, s store.Session) {
	t, err := db.SessionStats(r.Context(), s.ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionView{Session: s, Stats: t.Summary(game.BigBlind)})
}

func writeErr(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// logFormatter adapts zerolog to chi's request logger.
type logFormatter struct{ log zerolog.Logger }

func (f *logFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &logEntry{log: f.log.With().
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("url", r.URL.Path).
		Logger()}
}

type logEntry struct{ log zerolog.Logger }

func (e *logEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	level := zerolog.DebugLevel
	switch {
	case status >= 500:
		level = zerolog.ErrorLevel
	case status >= 400:
		level = zerolog.WarnLevel
	}
	e.log.WithLevel(level).Int("status", status).Int("bytes", bytes).Dur("elapsed", elapsed).Msg("request")
}

func (e *logEntry) Panic(v interface{}, stack []byte) {
	e.log.Error().Interface("panic", v).Bytes("stack", stack).Msg("request panic")
}
