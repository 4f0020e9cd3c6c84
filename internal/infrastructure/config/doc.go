// Package config loads and validates CRM Core configuration.
//
// Configuration comes from a YAML file with hardcoded defaults underneath
// and CRM_* environment variable overrides on top. The database section is
// the only shape the data-access core depends on; everything else (logging,
// security, feature flags) is carried for the composition root.
package config
