// Package cli turns command-line arguments into an app.Config.
//
// Flags may also come from a JSON file given with --config. Usage errors
// are returned as *ExitError carrying the process exit code.
package cli
