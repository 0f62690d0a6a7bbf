// Package config manages user-level settings stored at ~/.tsinit/config.yaml.
// Every key can also be set through a TSINIT_<KEY> environment variable, which
// is how the npm and git binaries, the registry endpoint, and the template
// override directory are usually pointed elsewhere in CI.
package config
