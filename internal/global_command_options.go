package internal

type GlobalCommandOptions struct {
	// EnableDebugLogging indicates you should turn on verbose/debug logging in your command and any
	// launched tools. It's enabled with `--debug`, for any command.
	EnableDebugLogging bool

	// NoColor disables ANSI color codes in all human-readable output. It's
	// enabled with `--no-color`, for any command, and is also set when stdout
	// is not a terminal.
	NoColor bool
}
