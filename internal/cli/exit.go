package cli

// Exit codes.
const (
	ExitOK       = 0
	ExitUsageErr = 2
	ExitInternal = 3
)
