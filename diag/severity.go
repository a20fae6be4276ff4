package diag

// Severity distinguishes a fatal diagnostic from an advisory one.
type Severity uint8

const (
	// SevError marks a failure.
	SevError Severity = iota
	// SevWarning marks an advisory diagnostic.
	SevWarning
)

func (s Severity) String() string {
	switch s {
	case SevError:
		return "ERROR"
	case SevWarning:
		return "WARNING"
	}
	return "UNKNOWN"
}
