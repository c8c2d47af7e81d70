package types

import "log/slog"

// Slog wraps a Type as a slog.LogValuer to not render type strings
// unless they definitely need to be logged
func Slog(t Type) slog.LogValuer {
	return typeLogValuer{t}
}

type typeLogValuer struct{ Type }

func (l typeLogValuer) LogValue() slog.Value {
	if l.Type == nil {
		return slog.StringValue("<nil>")
	}
	return slog.StringValue(l.Type.String())
}
