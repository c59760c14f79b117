// Package config defines the domainmap configuration.
//
//   - spec.go: the configuration structure
//   - default.go: default values
//   - verify.go: validation
//   - load.go: loading from file, environment and flags via confloader
package config
