// Package scaffold materializes a project's configuration files. It renders
// the build configuration and package manifest templates with the project
// name and resolved dependency versions and writes tsconfig.json and
// package.json into the target directory.
package scaffold
