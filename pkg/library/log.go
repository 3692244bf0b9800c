package library

import (
	"io"

	"github.com/charmbracelet/log"
)

var discardLogger = log.New(io.Discard)
