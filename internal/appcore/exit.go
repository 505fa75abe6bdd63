package appcore

// Process exit codes shared by the binaries.
const (
	ExitOK        = 0
	ExitFailed    = 1 // at least one model failed
	ExitUsage     = 2 // bad flags, configuration or missing psa
	ExitIO        = 3 // output could not be written
	ExitCancelled = 130
)
