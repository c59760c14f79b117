// Command domainmap exercises a fixed-domain map keyed by 128-bit hashes.
//
// Usage:
//
//	domainmap [global flags] command [flags]
//	domainmap demo
//	domainmap --domains 64 --hasher xxh3 stats --keys 1000000 --metrics
//	domainmap -o json hash alpha beta
//	domainmap shell
//
// Settings come from ~/.domainmap/config.yaml (or --config), then
// DOMAINMAP_* environment variables, then the global flags.
package main
