package tracing

// Span attribute keys for keytrain tracing.
const (
	// Session attributes
	AttrSessionID = "session.id"

	// Key attributes
	AttrKey     = "key.value"
	AttrKeyMode = "key.mode"

	// Interpreter attributes
	AttrOperator = "interp.operator"
	AttrCount    = "interp.count"

	// Error attributes
	AttrErrorMessage = "error.message"
)

// Span names.
const (
	SpanSession = "session"
	SpanKey     = "session.key"
)
