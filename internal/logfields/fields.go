package logfields

const (
	// Identifiers

	Region = "region"

	// Memory geometry

	Address = "address"
	Length  = "length"

	// Hardware keys and handles

	LocalKey  = "lkey"
	RemoteKey = "rkey"
	Handle    = "handle"
	Access    = "access"

	// logging and tracing

	TraceID = "traceID"
	SpanID  = "spanID"
)
