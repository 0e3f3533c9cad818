package expose

import (
	"io"
	"log/slog"

	"github.com/kieroneil/ruler/pkg/rules"
)

// Option configures a single Expose call.
type Option func(*options)

type options struct {
	removeObeyers bool
	guess         bool
	sep           rules.Separator
	logger        *slog.Logger
}

func buildOptions(opts []Option) options {
	o := options{
		removeObeyers: true,
		guess:         true,
		sep:           rules.DefaultSeparator(),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// KeepObeyers keeps verdict-false report rows in the attached report
// instead of dropping them.
func KeepObeyers() Option {
	return func(o *options) { o.removeObeyers = false }
}

// NoGuess disables structural type guessing. Every pack must then declare
// its type (or group vars); an undeclared pack fails the whole call.
func NoGuess() Option {
	return func(o *options) { o.guess = false }
}

// RuleSep overrides the separator used to split composite rule names.
func RuleSep(sep rules.Separator) Option {
	return func(o *options) { o.sep = sep }
}

// WithLogger sets the structured logger for the call. The default discards
// all output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
