// Package manifest parses and validates the package.json a bootstrap run
// produces. Validation uses the JSON Schema embedded from
// schema/package.schema.json and reports issues rather than failing, so a
// project is still written when, for instance, its directory name is not a
// legal npm package name.
package manifest
