package ast

import (
	"log/slog"
)

// Slog wraps an Expr as a slog.LogValuer to not render expression strings
// unless they definitely need to be logged
func Slog(expr Expr) slog.LogValuer {
	return exprLogValuer{expr}
}

type exprLogValuer struct{ Expr }

func (l exprLogValuer) LogValue() slog.Value {
	return slog.StringValue(ExprString(l.Expr))
}

// SlogPattern is Slog for patterns
func SlogPattern(pattern Pattern) slog.LogValuer {
	return patternLogValuer{pattern}
}

type patternLogValuer struct{ Pattern }

func (l patternLogValuer) LogValue() slog.Value {
	return slog.StringValue(PatternString(l.Pattern))
}
