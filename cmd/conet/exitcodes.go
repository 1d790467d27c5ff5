package main

// Exit codes returned by the conet CLI.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, invalid paths)
	ExitNotFound    = 3 // Author or path not found
	ExitAPIError    = 4 // OpenAlex or server API error (rate limit, network)
)
