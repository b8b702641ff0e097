package generator

import "fmt"

// UpstreamError reports a non-2xx reply from a provider backend. The
// backend's own message is carried through for the operator.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s backend error: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// MalformedOutputError reports model output that could not be parsed into a
// JSON array or contained a structurally invalid item. Index is the position
// of the offending item, or -1 when no array could be located at all.
type MalformedOutputError struct {
	Index int
	Msg   string
}

func (e *MalformedOutputError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("malformed model output at item %d: %s", e.Index, e.Msg)
	}
	return fmt.Sprintf("malformed model output: %s", e.Msg)
}

// ConfigError reports a missing API key or a model outside a provider's
// allow-list.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }
