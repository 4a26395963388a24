package cmd

const (
	// Success is the same as EXIT_SUCCESS in C
	Success = iota

	// BadArgs passed to cli; not our fault.
	BadArgs

	// BadInput means that a key or input file could not be read or parsed;
	// also not our fault.
	BadInput

	// UnknownError is an uncategorized error, probably our fault.
	UnknownError
)
