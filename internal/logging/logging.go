// Package logging builds the logr.Logger shared by every command.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// New returns a logger that writes one line per entry to w. Entries above
// verbosity are dropped. Writes are serialized, so the logger may be
// shared by the tick goroutine and the websocket sessions.
func New(w io.Writer, verbosity int) logr.Logger {
	var mu sync.Mutex
	return funcr.New(func(prefix, args string) {
		mu.Lock()
		defer mu.Unlock()
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{
		LogCaller:    funcr.None,
		LogTimestamp: true,
		Verbosity:    verbosity,
	})
}

// OpenFile appends to path and returns a logger on it together with the
// file, which the caller closes.
func OpenFile(path string, verbosity int) (logr.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return logr.Discard(), nil, err
	}
	return New(f, verbosity), f, nil
}
