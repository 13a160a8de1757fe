package config

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		IgnoreAllActualNilFields:  boolPtr(false),
		IgnoreAllOverriddenEquals: boolPtr(false),
		StrictTypeChecking:        boolPtr(false),
		TreatNilAndEmptyAsEqual:   boolPtr(false),
		IgnoreUnexportedFields:    boolPtr(false),
		Output:                    "console",
		SnapshotDir:               "__snapshots__",
		Parallel:                  boolPtr(false),
		Concurrency:               5,
		Bail:                      boolPtr(false),
		Verbose:                   boolPtr(false),
		NoColor:                   boolPtr(false),
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return len(c.IgnoreFields) == 0 &&
		len(c.IgnoreFieldsMatching) == 0 &&
		len(c.IgnoreOverriddenEqualsForFields) == 0 &&
		len(c.IgnoreOverriddenEqualsMatching) == 0 &&
		c.GetIgnoreAllActualNilFields() == defaults.GetIgnoreAllActualNilFields() &&
		c.GetIgnoreAllOverriddenEquals() == defaults.GetIgnoreAllOverriddenEquals() &&
		c.GetStrictTypeChecking() == defaults.GetStrictTypeChecking() &&
		c.GetTreatNilAndEmptyAsEqual() == defaults.GetTreatNilAndEmptyAsEqual() &&
		c.GetIgnoreUnexportedFields() == defaults.GetIgnoreUnexportedFields() &&
		c.Output == defaults.Output &&
		c.SnapshotDir == defaults.SnapshotDir &&
		c.GetParallel() == defaults.GetParallel() &&
		c.Concurrency == defaults.Concurrency &&
		c.GetBail() == defaults.GetBail() &&
		c.GetVerbose() == defaults.GetVerbose() &&
		c.GetNoColor() == defaults.GetNoColor()
}
