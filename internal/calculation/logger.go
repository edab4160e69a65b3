package calculation

// Logger receives diagnostics from SalaryCalculator: the derived figures and
// per-regime taxes at debug level, and degenerate inputs (deductions above
// gross income) as warnings. *logrus.Logger and *logrus.Entry satisfy it.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Warnf(string, ...any)  {}
