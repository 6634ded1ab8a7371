package server

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"MarketLens/internal/common"
	"MarketLens/internal/dashboard"
)

//go:embed templates/index.html
var templatesFS embed.FS

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	maxEvent   = 1 << 16
)

// Server exposes the dashboard controller over HTTP and websocket.
type Server struct {
	ctrl     *dashboard.Controller
	page     *template.Template
	title    string
	upgrader websocket.Upgrader

	clientsMu sync.Mutex
	clients   map[uuid.UUID]*websocket.Conn
}

// NewServer creates a Server for ctrl. title is shown in the page header.
func NewServer(ctrl *dashboard.Controller, title string) (*Server, error) {
	page, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = "MarketLens"
	}
	return &Server{
		ctrl:  ctrl,
		page:  page,
		title: title,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		clients: make(map[uuid.UUID]*websocket.Conn),
	}, nil
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/events", s.handleEvent)
	mux.HandleFunc("GET /api/suggest", s.handleSuggest)
	mux.HandleFunc("GET /ws", s.handleWS)
	return mux
}

// Clients returns the number of connected websocket clients.
func (s *Server) Clients() int {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return len(s.clients)
}

// CloseClients disconnects every websocket client.
func (s *Server) CloseClients() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for id, conn := range s.clients {
		_ = conn.Close()
		delete(s.clients, id)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Title string
	}{Title: s.title}
	if err := s.page.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("render index")
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"running": s.ctrl.Running(),
		"clients": s.Clients(),
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.ctrl.State())
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var ev dashboard.Event
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEvent))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid event: "+err.Error())
		return
	}

	if err := s.ctrl.Dispatch(r.Context(), ev); err != nil {
		switch {
		case errors.Is(err, dashboard.ErrNotRunning):
			writeError(w, http.StatusServiceUnavailable, err.Error())
		case r.Context().Err() != nil:
			writeError(w, http.StatusServiceUnavailable, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	writeJSON(w, s.ctrl.State())
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	out, err := s.ctrl.Suggest(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if out == nil {
		out = []dashboard.Suggestion{}
	}
	writeJSON(w, out)
}

// handleWS streams snapshots to the client until either side hangs up.
// A client that cannot keep up misses snapshots and is disconnected once a
// write stalls past writeWait.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).
			Str("error_code", common.ErrCodeWebsocketFailed.String()).
			Str("error_message", common.ErrMsgWebsocketFailed.String()).
			Msg("websocket upgrade")
		return
	}

	id := uuid.New()
	s.clientsMu.Lock()
	s.clients[id] = conn
	s.clientsMu.Unlock()
	log.Info().Str("client", id.String()).Msg("websocket client connected")

	snaps, cancel := s.ctrl.Subscribe()
	closed := make(chan struct{})

	defer func() {
		cancel()
		s.clientsMu.Lock()
		delete(s.clients, id)
		s.clientsMu.Unlock()
		_ = conn.Close()
		log.Info().Str("client", id.String()).Msg("websocket client disconnected")
	}()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := s.send(conn, s.ctrl.State()); err != nil {
		return
	}

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case snap, ok := <-snaps:
			if !ok {
				return
			}
			if err := s.send(conn, snap); err != nil {
				log.Warn().Err(err).
					Str("error_code", common.ErrCodeWebsocketFailed.String()).
					Str("client", id.String()).
					Msg("websocket write failed, dropping client")
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) send(conn *websocket.Conn, snap dashboard.Snapshot) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(snap)
}
