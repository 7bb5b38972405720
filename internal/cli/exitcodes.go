package cli

// Exit codes for CLI commands.
// These codes follow Unix conventions and are shared by every command.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneral indicates a general error occurred.
	// Use for: daemon unreachable, store errors, timeouts, rejected submissions.
	ExitGeneral = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: missing arguments, non-numeric ids, flags out of range.
	ExitUsage = 2

	// ExitNotFound indicates a requested record was not found.
	// Use for: unknown review id, unknown product id.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: a response the daemon could not produce or decode.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: a draft that fails the client-side gate, or field errors
	// returned by the store.
	ExitValidation = 5
)
