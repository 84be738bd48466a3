// Package cli defines the Cobra command tree for the qflow CLI. Each file in
// this package registers one top-level command (ask, new, validate, etc.)
// with the root command. Commands delegate to internal packages for the
// question walk itself and only handle flag parsing, I/O formatting and
// exit codes.
package cli
