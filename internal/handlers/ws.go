package handlers

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-board/internal/session"
)

func newUpgrader(origins []string) websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return len(origins) == 0 || origin == "" || slices.Contains(origins, origin)
		},
	}
}

// commandLines yields the trimmed, non-empty lines of a client message.
func commandLines(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := text
		for found := true; found; {
			var line string
			line, rest, found = strings.Cut(rest, "\n")
			if line = strings.TrimSpace(line); line == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}

// ConnectWS streams board events to the client. The client sends cell
// indices separated by newlines; every reveal, from any client, comes
// back as an update event.
func (h *BoardHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Error("unable to upgrade")
		return
	}
	defer conn.Close()

	log := h.log.WithField("client", uuid.NewString())
	log.Debug("client connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	events, unsubscribe, err := h.session.Subscribe(ctx)
	if err != nil {
		log.WithError(err).Error("unable to subscribe")
		return
	}
	defer unsubscribe()

	snap, err := h.session.Snapshot(ctx)
	if err != nil {
		log.WithError(err).Error("unable to take board snapshot")
		return
	}

	errs := make(chan error)
	go h.writeEvents(ctx, conn, log, session.Event{Reset: &snap}, events, errs)

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("abnormal ws break")
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		log.Debugf("\t> %s", text)
		for line := range commandLines(text) {
			if err := h.revealLine(ctx, line); err != nil {
				select {
				case errs <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}
	log.Debug("client disconnected")
}

func (h *BoardHandler) revealLine(ctx context.Context, line string) error {
	index, err := strconv.Atoi(line)
	if err != nil {
		return fmt.Errorf("cell index must be an int: %q", line)
	}
	_, err = h.session.Reveal(ctx, index)
	return err
}

// writeEvents owns all writes to conn.
func (h *BoardHandler) writeEvents(
	ctx context.Context,
	conn *websocket.Conn,
	log logrus.FieldLogger,
	first session.Event,
	events <-chan session.Event,
	errs <-chan error,
) {
	defer conn.Close()

	if err := conn.WriteJSON(first); err != nil {
		log.WithError(err).Error("unable to write json")
		return
	}
	for {
		var v any
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			v = e
		case err := <-errs:
			v = wrapError(err)
		}
		if err := conn.WriteJSON(v); err != nil {
			log.WithError(err).Error("unable to write json")
			return
		}
		log.Debug("\t< <board event>")
	}
}
