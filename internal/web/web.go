// Package web serves the landing page that tells visitors how to reach the
// SSH game and shows the current high score.
package web

import (
	_ "embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/tomz197/snake/internal/score"
)

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

// Page is the data shown on the landing page.
type Page struct {
	SSHHost   string
	SSHPort   string
	HighScore int
}

type highScoreResponse struct {
	HighScore int `json:"highScore"`
}

// Handler serves "/" and "/highscore".
type Handler struct {
	store   score.Store
	sshHost string
	sshPort string
	logger  *log.Logger
	mux     *http.ServeMux
}

// NewHandler returns a handler reading the high score from store on every
// request, so scores set over SSH show up without a restart.
func NewHandler(store score.Store, sshHost, sshPort string, logger *log.Logger) *Handler {
	h := &Handler{store: store, sshHost: sshHost, sshPort: sshPort, logger: logger, mux: http.NewServeMux()}
	h.mux.HandleFunc("GET /{$}", h.index)
	h.mux.HandleFunc("GET /highscore", h.highScore)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) load() int {
	best, err := h.store.Load()
	if err != nil {
		h.logger.Warn("load high score", "err", err)
		return 0
	}
	return best
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := Page{SSHHost: h.sshHost, SSHPort: h.sshPort, HighScore: h.load()}
	if err := indexTmpl.Execute(w, page); err != nil {
		h.logger.Error("render index", "err", err)
	}
}

func (h *Handler) highScore(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(highScoreResponse{HighScore: h.load()}); err != nil {
		h.logger.Error("encode high score", "err", err)
	}
}
