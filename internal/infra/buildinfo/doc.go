// Package buildinfo reports the version of the domainmap binary.
//
// Release builds inject values with ldflags:
//
//	go build -ldflags "-X github.com/yndnr/domainmap/internal/infra/buildinfo.Version=v0.3.0"
//
// Values left at their defaults are filled from the module build info
// embedded by the Go toolchain (module version, vcs.revision, vcs.time).
package buildinfo
