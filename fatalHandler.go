package main

import (
	"errors"
	"os"

	"github.com/estafette/estafette-build-time-analyzer/clients/buildlog"
	"github.com/rs/zerolog/log"
)

// FatalHandler has methods to shutdown the analyzer after a fatal error
type FatalHandler interface {
	HandleFatal(error, string)
}

type fatalHandler struct {
}

// NewFatalHandler returns a new FatalHandler
func NewFatalHandler() FatalHandler {
	return &fatalHandler{}
}

func (fh *fatalHandler) HandleFatal(err error, message string) {

	if errors.Is(err, buildlog.ErrLogFileNotFound) {
		log.Error().Msg("Record a build with 'START' and 'FINISH' arguments or pass --log-file to read another build log")
	}

	log.Fatal().Err(err).Msg(message)
	os.Exit(1)
}
