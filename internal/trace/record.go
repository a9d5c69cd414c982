package trace

import (
	"time"
)

// RequestInfo identifies the request a traced operation serves.
type RequestInfo struct {
	Kind           string   // "conforming-methods" | "type-context"
	BufferIdentity string   // canonicalized buffer identity
	Args           []string // invocation arguments
	OriginalOffset uint32
	MarkerOffset   uint32 // offset after marker splicing
}

// DiagRecord is a diagnostic captured for trace correlation.
type DiagRecord struct {
	Severity string
	Code     string
	Message  string
	Offset   uint32
}

// Record is the persisted form of one traced operation. Encoded with
// msgpack; Schema guards against format drift between writer and reader.
type Record struct {
	Schema uint16
	Seq    uint64
	Time   time.Time

	Request     RequestInfo
	Attrs       map[string]string
	Diagnostics []DiagRecord
}

// recordSchemaVersion - increment when Record's format changes.
const recordSchemaVersion uint16 = 1
