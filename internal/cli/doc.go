// Package cli defines the Cobra root command for the tsinit CLI. The command
// takes a single optional project name, so everything else is exposed as a
// flag: --version, --config-get, --config-set and --log-level. Work is
// delegated to internal packages; this package handles flag parsing, wiring,
// and output formatting.
package cli
