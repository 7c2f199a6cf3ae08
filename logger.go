package board

import (
	"io"

	"github.com/charmbracelet/log"
)

var logger = log.New(io.Discard)

// SetLogger routes the package's debug output to l. Passing nil silences it
// again.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}
