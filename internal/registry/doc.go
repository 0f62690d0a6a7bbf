// Package registry resolves the latest published version of npm packages.
// Two backends are provided: NPMResolver shells out to `npm view`, and
// HTTPResolver talks to the registry's JSON API directly. ResolveAll fans the
// lookups out concurrently and joins them before returning.
package registry
