package obs

import (
	"log/slog"
	"os"
)

// NewLogger builds the JSON logger shared by a service process. The
// service name is attached to every record so aggregated logs from the
// five binaries stay distinguishable.
func NewLogger(service string, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("service", service)
}
