package diag

// Severity classifies a diagnostic for the consumers that render or
// collect it. Queries never abort on an error-severity diagnostic: the
// answer is produced from whatever did bind, and the diagnostic records
// what did not.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	// SevError covers failures a batch compiler would stop on, including
	// unresolved imports and types in the queried buffer.
	SevError
)

// String returns the uppercase label the printing consumer and trace
// records use.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
