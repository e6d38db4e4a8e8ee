package main

// Exit codes
const (
	ExitSuccess = 0 // Success
	ExitError   = 1 // General error (bad repository state, rendering failure)
)
