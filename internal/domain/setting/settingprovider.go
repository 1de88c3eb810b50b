package setting

import "context"

const (
	SourceDatabase = "database"
	SourceConfig   = "config"
	SourceDefault  = "default"
)

// ConfigValue is a resolved setting and where it came from.
type ConfigValue struct {
	Value  int
	Source string
}

// SLAProvider resolves SLA settings with database, then config file, then
// built-in default precedence. It never fails: lookup errors are logged and
// the next source is used.
type SLAProvider interface {
	TargetDays(ctx context.Context) ConfigValue
	WarningDays(ctx context.Context) ConfigValue
}
