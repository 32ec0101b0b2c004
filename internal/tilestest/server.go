// Package tilestest provides an in-process fake of the Map Tiles API.
package tilestest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"github.com/naveenspark/tilegrab/pkg/domain"
)

// Server is a fake Map Tiles API. Zero-valued status fields mean 200.
type Server struct {
	*httptest.Server

	APIKey       string
	Token        string
	SessionCode  int
	SessionBody  string // raw JSON override for a 200 session response
	TileCode     int
	TileBody     []byte
	TruncateTile bool // advertise a longer body than is written

	mu            sync.Mutex
	sessionCalls  int
	tileCalls     int
	lastSession   domain.SessionRequest
	lastTile      domain.TileIndex
	lastRequestID string
}

// New starts a fake server accepting apiKey and issuing token.
func New(apiKey, token string) *Server {
	s := &Server{APIKey: apiKey, Token: token}
	r := mux.NewRouter()
	r.HandleFunc("/v1/createSession", s.createSession).Methods(http.MethodPost)
	r.HandleFunc("/v1/2dtiles/{z:-?[0-9]+}/{x:-?[0-9]+}/{y:-?[0-9]+}", s.tile).Methods(http.MethodGet)
	s.Server = httptest.NewServer(r)
	return s
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
		"error": map[string]any{"code": code, "message": msg},
	})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.sessionCalls++
	s.lastRequestID = r.Header.Get("X-Request-Id")
	s.mu.Unlock()

	if r.URL.Query().Get("key") != s.APIKey {
		writeError(w, http.StatusForbidden, "API key not valid")
		return
	}
	if s.SessionCode != 0 && s.SessionCode != http.StatusOK {
		writeError(w, s.SessionCode, http.StatusText(s.SessionCode))
		return
	}
	if r.Header.Get("Content-Type") != "application/json" {
		writeError(w, http.StatusBadRequest, "expected application/json")
		return
	}
	var req domain.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	s.lastSession = req
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if s.SessionBody != "" {
		w.Write([]byte(s.SessionBody)) //nolint:errcheck
		return
	}
	json.NewEncoder(w).Encode(domain.Session{ //nolint:errcheck
		Token:       s.Token,
		Expiry:      "1700000000",
		TileWidth:   domain.TileSize,
		TileHeight:  domain.TileSize,
		ImageFormat: "jpeg",
	})
}

func (s *Server) tile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	z, _ := strconv.Atoi(vars["z"]) //nolint:errcheck // route regexp guarantees digits
	x, _ := strconv.Atoi(vars["x"]) //nolint:errcheck
	y, _ := strconv.Atoi(vars["y"]) //nolint:errcheck

	s.mu.Lock()
	s.tileCalls++
	s.lastTile = domain.TileIndex{Zoom: z, X: x, Y: y}
	s.lastRequestID = r.Header.Get("X-Request-Id")
	s.mu.Unlock()

	q := r.URL.Query()
	if q.Get("key") != s.APIKey {
		writeError(w, http.StatusForbidden, "API key not valid")
		return
	}
	if q.Get("session") != s.Token {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return
	}
	if s.TileCode != 0 && s.TileCode != http.StatusOK {
		writeError(w, s.TileCode, http.StatusText(s.TileCode))
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	if s.TruncateTile {
		w.Header().Set("Content-Length", strconv.Itoa(len(s.TileBody)+1024))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(s.TileBody) //nolint:errcheck
}

// SessionCalls returns how many createSession requests were served.
func (s *Server) SessionCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionCalls
}

// TileCalls returns how many tile requests were served.
func (s *Server) TileCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tileCalls
}

// LastSession returns the most recent decoded createSession body.
func (s *Server) LastSession() domain.SessionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSession
}

// LastTile returns the most recently requested tile.
func (s *Server) LastTile() domain.TileIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTile
}

// LastRequestID returns the X-Request-Id of the most recent request.
func (s *Server) LastRequestID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRequestID
}
