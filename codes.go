package kimberlite

// Status codes the client attaches to the diagnostics it creates itself.
// Server diagnostics carry whatever code the server reported.
const (
	// StateWarning is a generic warning.
	StateWarning = "01000"

	// StateStringTruncated reports a value truncated on the way out.
	StateStringTruncated = "01004"

	// StateNoData reports that a statement produced no rows.
	StateNoData = "02000"

	// StateConnectionFailure reports that a connection could not be established.
	StateConnectionFailure = "08001"

	// StateConnectionDoesNotExist reports an operation on a closed connection.
	StateConnectionDoesNotExist = "08003"

	// StateConnectionException is a generic connection failure.
	StateConnectionException = "08000"

	// StateInsufficientPrivilege reports an unauthorized operation.
	StateInsufficientPrivilege = "42501"

	// StateSyntaxError reports a statement the server could not parse.
	StateSyntaxError = "42601"

	// StateUndefinedObject reports a missing stream.
	StateUndefinedObject = "42704"

	// StateQueryCanceled reports a statement not run because its batch was cancelled.
	StateQueryCanceled = "57014"

	// StateInternal is used when no better code is known.
	StateInternal = "XX000"
)
