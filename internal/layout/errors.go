package layout

import "fmt"

// ConfigError reports geometry or preset values that cannot be rendered.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid layout: %s", e.Reason)
	}
	return fmt.Sprintf("invalid layout %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }
