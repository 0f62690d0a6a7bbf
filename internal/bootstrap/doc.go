// Package bootstrap sequences a project bootstrap: it validates the requested
// directory name, creates the target directory, resolves dependency versions,
// writes the configuration files, initializes git, and creates the source
// entry point.
//
// Every capability the run touches (working directory, filesystem, registry,
// git) is passed in through Env, so a run can be exercised against an
// in-memory filesystem and stubbed commands.
package bootstrap
