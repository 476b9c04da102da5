package trigger

import "log/slog"

// Slog is a Trigger that writes codes to a structured logger, useful
// when no hardware or transport sink is attached.
type Slog struct {
	log *slog.Logger
}

// NewSlog returns a logging Trigger. logger may be nil to use the
// default logger.
func NewSlog(logger *slog.Logger) *Slog {
	if logger == nil {
		logger = slog.Default()
	}

	return &Slog{log: logger}
}

// Signal logs the code.
func (t *Slog) Signal(code int) error {
	if err := validateCode(code); err != nil {
		return err
	}
	t.log.Info("trigger", "code", code)

	return nil
}
