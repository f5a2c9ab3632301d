package model

// AppConfig holds application-wide preferences and default packing settings.
type AppConfig struct {
	// Default packing settings applied to new projects
	Strategy      string `json:"strategy" toml:"strategy"` // "skyline", "split", "strip"
	MaxWidth      uint32 `json:"max_width" toml:"max_width"`
	MaxHeight     uint32 `json:"max_height" toml:"max_height"`
	AllowFlipping bool   `json:"allow_flipping" toml:"allow_flipping"`
	DiscardStep   int    `json:"discard_step" toml:"discard_step"` // bin search precision; <= 0 means extra tries at step 1
	FitToContent  bool   `json:"fit_to_content" toml:"fit_to_content"`

	// Ordering search
	Genetic GeneticSettings `json:"genetic" toml:"genetic"`

	// Application preferences
	LogLevel       string   `json:"log_level" toml:"log_level"` // "debug", "info", "warn", "error"
	ReportFormats  []string `json:"report_formats" toml:"report_formats"`
	RecentProjects []string `json:"recent_projects" toml:"recent_projects"`
}

// GeneticSettings tunes the genetic insertion-order search.
type GeneticSettings struct {
	Enabled        bool    `json:"enabled" toml:"enabled"`
	PopulationSize int     `json:"population_size" toml:"population_size"`
	Generations    int     `json:"generations" toml:"generations"`
	MutationRate   float64 `json:"mutation_rate" toml:"mutation_rate"`
	Seed           int64   `json:"seed" toml:"seed"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching DefaultPackerConfig().
func DefaultAppConfig() AppConfig {
	defaults := DefaultPackerConfig()
	return AppConfig{
		Strategy:      "skyline",
		MaxWidth:      defaults.MaxWidth,
		MaxHeight:     defaults.MaxHeight,
		AllowFlipping: defaults.AllowFlipping,
		DiscardStep:   1,
		Genetic: GeneticSettings{
			Enabled:        false,
			PopulationSize: 40,
			Generations:    60,
			MutationRate:   0.15,
			Seed:           42,
		},
		LogLevel:       "info",
		ReportFormats:  []string{"pdf"},
		RecentProjects: []string{},
	}
}

// PackerConfig builds the packer configuration described by c.
// Zero sizes fall back to the defaults.
func (c AppConfig) PackerConfig() PackerConfig {
	cfg := PackerConfig{
		MaxWidth:      c.MaxWidth,
		MaxHeight:     c.MaxHeight,
		AllowFlipping: c.AllowFlipping,
	}
	if cfg.MaxWidth == 0 {
		cfg.MaxWidth = DefaultMaxWidth
	}
	if cfg.MaxHeight == 0 {
		cfg.MaxHeight = DefaultMaxHeight
	}
	return cfg
}

// ApplyPreset copies an atlas preset's limits into the config.
func (c *AppConfig) ApplyPreset(p AtlasPreset) {
	c.MaxWidth = p.Width
	c.MaxHeight = p.Height
	c.AllowFlipping = p.AllowFlipping
	if p.Strategy != "" {
		c.Strategy = p.Strategy
	}
}
