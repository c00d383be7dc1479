package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"agilegame/internal/game"
	"agilegame/views/components"
)

const (
	defaultIdleInterval = time.Second
	defaultPingTimeout  = 15 * time.Second
	defaultKeepAlive    = 25 * time.Second
)

// StreamHandler serves the server-sent event endpoints.
type StreamHandler struct {
	store *game.Store
	log   zerolog.Logger

	// IdleInterval is the pause between idle status frames.
	IdleInterval time.Duration
	// PingTimeout bounds each wait for a count while counting.
	PingTimeout time.Duration
	// KeepAlive is the comment interval on /events.
	KeepAlive time.Duration
}

func NewStreamHandler(store *game.Store, log zerolog.Logger) *StreamHandler {
	return &StreamHandler{
		store:        store,
		log:          log,
		IdleInterval: defaultIdleInterval,
		PingTimeout:  defaultPingTimeout,
		KeepAlive:    defaultKeepAlive,
	}
}

func (h *StreamHandler) RegisterRoutes(r chi.Router) {
	r.Get("/live_counter", h.liveCounter)
	r.Get("/events", h.events)
}

func startSSE(w http.ResponseWriter) (http.Flusher, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return nil, false
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	return flusher, true
}

// liveCounter forwards every queued count to the client in order. While no
// iteration runs it sends idle status frames; while counting it pings when
// no count arrives within PingTimeout. It ends when the client disconnects.
func (h *StreamHandler) liveCounter(w http.ResponseWriter, r *http.Request) {
	flusher, ok := startSSE(w)
	if !ok {
		return
	}
	ctx := r.Context()
	log := h.log.With().Str("stream", uuid.NewString()).Logger()
	log.Info().Str("remote", r.RemoteAddr).Msg("live counter connected")
	defer log.Info().Msg("live counter disconnected")

	if err := writeSSE(w, "hello", "connected"); err != nil {
		return
	}
	flusher.Flush()

	for {
		var err error
		if !h.store.Counting() {
			idle := time.NewTimer(h.IdleInterval)
			select {
			case <-ctx.Done():
				idle.Stop()
				return
			case <-idle.C:
			}
			err = writeSSE(w, "status", "idle")
		} else if count, ok := h.store.Counts().Pop(ctx, h.PingTimeout); ok {
			err = writeSSE(w, "", strconv.Itoa(count))
		} else {
			if ctx.Err() != nil {
				return
			}
			err = writeSSE(w, "ping", "keep-alive")
		}
		if err != nil {
			log.Debug().Err(err).Msg("live counter write")
			return
		}
		flusher.Flush()
	}
}

// events pushes re-rendered dashboard fragments whenever the store changes.
func (h *StreamHandler) events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := startSSE(w)
	if !ok {
		return
	}

	hub := h.store.Events()
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)
	h.log.Debug().Int("subscribers", hub.Subscribers()).Msg("dashboard events connected")

	send := func(event string) error {
		st := h.store.Snapshot()
		var html string
		switch event {
		case game.EventResults:
			html = renderToString(r, components.ResultsFragment(toResultsFragment(st.IterationsData)))
		case game.EventState:
			html = renderToString(r, components.StatusFragment(toStatusFragment(st)))
		default:
			return nil
		}
		if err := writeSSE(w, event, html); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	if send(game.EventState) != nil || send(game.EventResults) != nil {
		return
	}

	keepAlive := time.NewTicker(h.KeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-sub:
			if !open {
				return
			}
			if send(event) != nil {
				return
			}
		case <-keepAlive.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
