// Package command defines the command tree of the domainmap binary.
//
// Global flags select the configuration file and override the table,
// output and log settings; every subcommand reads the resulting Env:
//
//	domainmap demo
//	domainmap --domains 32 --hasher xxh3 stats --keys 100000 --remove 500
//	domainmap hash alpha beta
//	domainmap shell
package command
