package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-board/internal/session"
)

type RevealParams struct {
	Index int `schema:"index,required"`
}

type BoardHandler struct {
	log      *logrus.Logger
	session  *session.Session
	decoder  *schema.Decoder
	upgrader websocket.Upgrader
}

func NewBoardHandler(log *logrus.Logger, s *session.Session, origins []string) *BoardHandler {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return &BoardHandler{
		log:      log,
		session:  s,
		decoder:  dec,
		upgrader: newUpgrader(origins),
	}
}

func (h *BoardHandler) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /status", h.Status)
	mux.HandleFunc("GET /board", h.Fetch)
	mux.HandleFunc("POST /board/reveal", h.Reveal)
	mux.HandleFunc("POST /board/reset", h.Reset)
	mux.HandleFunc("/board/connect", h.ConnectWS)

	return mux
}

func (h *BoardHandler) Status(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, h.log, "ok")
}

func (h *BoardHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	snap, err := h.session.Snapshot(r.Context())
	if err != nil {
		h.log.WithError(err).Error("unable to take board snapshot")
		sendErrorOrLog(w, h.log, http.StatusServiceUnavailable, err)
		return
	}
	sendJSONOrLog(w, h.log, snap)
}

func (h *BoardHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	var params RevealParams
	if err := h.decoder.Decode(&params, r.URL.Query()); err != nil {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}

	update, err := h.session.Reveal(r.Context(), params.Index)
	if errors.Is(err, session.ErrInvalidIndex) {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		h.log.WithError(err).Error("unable to reveal cell")
		sendErrorOrLog(w, h.log, http.StatusServiceUnavailable, err)
		return
	}
	sendJSONOrLog(w, h.log, update)
}

func (h *BoardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	snap, err := h.session.Regenerate(r.Context())
	if err != nil {
		h.log.WithError(err).Error("unable to regenerate board")
		sendErrorOrLog(w, h.log, http.StatusServiceUnavailable, err)
		return
	}
	sendJSONOrLog(w, h.log, snap)
}
