// Package config loads and validates HomeLink Core configuration.
//
// Configuration is layered: hardcoded defaults, then the YAML file, then
// HOMELINK_* environment variables. The JWT secret deliberately has no
// default so that a deployment cannot silently run with a known signing key.
//
// # Usage
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    // missing file, parse error, or failed validation
//	}
package config
