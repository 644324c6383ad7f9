package normalize_test

import (
	"io"
	"log/slog"
	"strings"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// text joins lines into a newline-terminated extract.
func text(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func lines(ls ...string) *strings.Reader {
	return strings.NewReader(text(ls...))
}
