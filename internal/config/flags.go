package config

// Overrides carries command-line values that take priority over the
// config file. Pointer fields are nil when the flag was not given.
type Overrides struct {
	Debug     *bool
	Lighting  *bool
	Fog       *bool
	AutoScale *bool
	Compress  *bool
	Version   *string
}

// Apply merges the overrides into the config.
func (o Overrides) Apply(cfg *Config) {
	if o.Debug != nil && *o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.Lighting != nil {
		cfg.Export.Lighting = *o.Lighting
	}
	if o.Fog != nil {
		cfg.Export.Fog = *o.Fog
	}
	if o.AutoScale != nil {
		cfg.Export.AutoScale = *o.AutoScale
	}
	if o.Compress != nil {
		cfg.Export.Compress = *o.Compress
	}
	if o.Version != nil {
		cfg.Export.Version = *o.Version
	}
}
