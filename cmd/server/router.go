package main

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-board/internal/config"
	"github.com/vancomm/minesweeper-board/internal/handlers"
	"github.com/vancomm/minesweeper-board/internal/middleware"
	"github.com/vancomm/minesweeper-board/internal/session"
)

func buildHandler(log *logrus.Logger, cfg *config.Config, sess *session.Session) http.Handler {
	handler := handlers.NewBoardHandler(log, sess, cfg.AllowedOrigins)

	return middleware.Wrap(
		handler.ServeMux(),
		middleware.Cors(cfg.AllowedOrigins),
		middleware.Logging(log),
	)
}
