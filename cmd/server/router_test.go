package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-board/internal/board"
	"github.com/vancomm/minesweeper-board/internal/config"
	"github.com/vancomm/minesweeper-board/internal/session"
)

func newTestServer(t *testing.T) (*httptest.Server, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()

	cfg := config.Default()
	seed := uint64(7)
	cfg.Board = config.Board{Width: 4, Height: 3, Seed: &seed}
	cfg.AllowedOrigins = []string{"http://allowed.example"}

	sess := session.New(board.New(cfg.Board.Width, cfg.Board.Height, cfg.Board.Seed), log)
	ctx, cancel := context.WithCancel(context.Background())
	go sess.Run(ctx)

	srv := httptest.NewServer(buildHandler(log, &cfg, sess))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return srv, hook
}

func TestStatusThroughMiddleware(t *testing.T) {
	srv, hook := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/status", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://allowed.example")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "http://allowed.example", res.Header.Get("Access-Control-Allow-Origin"))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.InfoLevel, entry.Level)
	require.Equal(t, "/status", entry.Data["uri"])
	require.Equal(t, http.StatusOK, entry.Data["status"])
}

func TestConnectThroughMiddleware(t *testing.T) {
	srv, hook := newTestServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/board/connect"
	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{
		"Origin": []string{"http://allowed.example"},
	})
	require.NoError(t, err)
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var first session.Event
	require.NoError(t, conn.ReadJSON(&first))
	require.NotNil(t, first.Reset)
	require.Equal(t, 4, first.Reset.Width)
	require.Len(t, first.Reset.Grid, 6*5)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("7")))
	var e session.Event
	require.NoError(t, conn.ReadJSON(&e))
	require.NotNil(t, e.Update)
	require.Equal(t, 7, e.Update.Index)
	require.True(t, e.Update.Revealed)

	require.NoError(t, conn.Close())

	// the request is logged once the handler returns
	require.Eventually(t, func() bool {
		for _, entry := range hook.AllEntries() {
			if entry.Data["uri"] == "/board/connect" && entry.Data["hijacked"] == true {
				return true
			}
		}
		return false
	}, 5*time.Second, 10*time.Millisecond)
}
