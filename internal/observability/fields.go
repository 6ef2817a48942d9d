package observability

import "go.uber.org/zap"

// Field aliases so callers outside the HTTP layer do not import zap
// directly.
var (
	String  = zap.String
	Int     = zap.Int
	Bool    = zap.Bool
	Float64 = zap.Float64
	Error   = zap.Error
)
