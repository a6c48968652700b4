package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the engagement config file at the root of an engagement dir.
const FileName = "regnskap.yaml"

// Config represents the top-level regnskap.yaml configuration.
type Config struct {
	Client  ClientConfig  `yaml:"client"`
	Year    int           `yaml:"year"`
	Sources SourcesConfig `yaml:"sources"`
	Build   BuildConfig   `yaml:"build"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
	Git     GitConfig     `yaml:"git"`
}

// ClientConfig identifies the client entity.
type ClientConfig struct {
	Name      string `yaml:"name"`
	OrgNumber string `yaml:"org_number,omitempty"`
}

// SourcesConfig lists the input files. Relative paths are relative to the
// engagement dir.
type SourcesConfig struct {
	TrialBalance string `yaml:"trial_balance"`
	Format       string `yaml:"format,omitempty"` // importer format; guessed from extension when empty
	Lines        string `yaml:"lines"`
	Intervals    string `yaml:"intervals"`
	KPIs         string `yaml:"kpis"`
	Overrides    string `yaml:"overrides"`
}

// BuildConfig controls statement builds.
type BuildConfig struct {
	Strict          bool `yaml:"strict"`
	ApplyResultSign bool `yaml:"apply_result_sign"`
}

// OutputConfig controls where and how results are written.
type OutputConfig struct {
	Dir     string   `yaml:"dir"`
	Formats []string `yaml:"formats"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a regnskap.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new engagement.
func Default(clientName string, year int) *Config {
	return &Config{
		Client: ClientConfig{Name: clientName},
		Year:   year,
		Sources: SourcesConfig{
			TrialBalance: "saldobalanse.csv",
			Lines:        "regnskapslinjer.csv",
			Intervals:    "intervaller.csv",
			KPIs:         "kpi.csv",
			Overrides:    "overstyringer.csv",
		},
		Build: BuildConfig{
			ApplyResultSign: true,
		},
		Output: OutputConfig{
			Dir:     "ut",
			Formats: []string{"csv", "xlsx"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Git: GitConfig{
			AuthorName:  "regnskap",
			AuthorEmail: "regnskap@localhost",
		},
	}
}

// Resolve returns a copy with every source and output path made absolute
// against root. Empty paths stay empty.
func (c *Config) Resolve(root string) *Config {
	out := *c
	out.Output.Formats = append([]string(nil), c.Output.Formats...)

	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}
	out.Sources.TrialBalance = abs(c.Sources.TrialBalance)
	out.Sources.Lines = abs(c.Sources.Lines)
	out.Sources.Intervals = abs(c.Sources.Intervals)
	out.Sources.KPIs = abs(c.Sources.KPIs)
	out.Sources.Overrides = abs(c.Sources.Overrides)
	out.Output.Dir = abs(c.Output.Dir)
	return &out
}
