// Package config handles comparison profiles for structeq.
//
// It provides functionality for:
//   - Loading profiles from .structeq.yaml, .structeq.yml or .structeq.json files
//   - Validating profiles against an embedded JSON schema
//   - Default configuration values and merging with command line overrides
//   - Converting a profile into recursive comparator options
package config
