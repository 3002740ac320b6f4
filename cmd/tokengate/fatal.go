package main

import (
	"log/slog"
	"os"

	"git.sr.ht/~jakintosh/tokengate/internal/logging"
)

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, logging.Error(err))
	os.Exit(1)
}
