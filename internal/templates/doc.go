// Package templates is the store for the project templates a bootstrap run
// renders: the TypeScript build configuration and the package manifest.
//
// The canonical copies live in the repository's top-level templates/
// directory. `go generate` syncs every *.json file from there into files/,
// which is embedded into the binary. A directory on disk can be used instead
// through NewFromDir.
//
// Templates use {{name}} placeholders. Render replaces every occurrence of
// each known token and reports any placeholder left behind.
package templates
