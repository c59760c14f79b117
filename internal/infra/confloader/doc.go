// Package confloader loads layered configuration with koanf.
//
// Priority (highest to lowest):
//
//  1. Command-line flags (WithOverrides)
//  2. Environment variables (DOMAINMAP_SECTION_KEY)
//  3. The YAML configuration file
//  4. Defaults already present in the target struct
//
// The loader remembers which source last changed each key; see Origin.
//
// Watcher reports edits of the configuration file so long-running
// commands can re-read it. WithDebounce folds the several events of one
// editor save into a single callback run.
package confloader
