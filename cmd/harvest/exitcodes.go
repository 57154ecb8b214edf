package main

// Exit codes.
const (
	ExitSuccess       = 0 // Success
	ExitError         = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError   = 2 // Configuration error (bad config or overrides file)
	ExitDataError     = 3 // Data error (malformed metadata, validation failure)
	ExitExternalError = 4 // ADS behaved unexpectedly
)
