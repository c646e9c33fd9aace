// Package logging sets up the levelled run log and writes run reports
package logging

import (
	"io"

	"github.com/labstack/gommon/log"
)

// header is the text prefix of every log line
const header = "${time_rfc3339} ${level} ${prefix}"

// NewLogger creates the run logger writing to w. Debug enables the trace of
// interval decisions and ignored markers.
func NewLogger(w io.Writer, debug bool) *log.Logger {
	l := log.New("jumpcutter")
	l.SetHeader(header)
	l.SetOutput(w)
	l.DisableColor()
	if debug {
		l.SetLevel(log.DEBUG)
	} else {
		l.SetLevel(log.INFO)
	}
	return l
}
