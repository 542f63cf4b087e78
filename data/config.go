package data

import "github.com/warp/attendance-engine/calendar"

// =============================================================================
// QUARTER CATALOG + SETTINGS - Shared config.yaml
// =============================================================================

// QuarterConfig names a fiscal quarter and its inclusive date range.
// The catalog is immutable for the lifetime of a session.
type QuarterConfig struct {
	Key     string        `yaml:"key"`
	Quarter string        `yaml:"quarter"`
	Year    string        `yaml:"year"`
	Start   calendar.Date `yaml:"start_date"`
	End     calendar.Date `yaml:"end_date"`
}

// Period returns the quarter's inclusive date range.
func (q QuarterConfig) Period() calendar.Period {
	return calendar.Period{Start: q.Start, End: q.End}
}

// Settings holds the user-editable display labels.
type Settings struct {
	DefaultOffice   string `yaml:"default_office"`
	FlexCreditLabel string `yaml:"flex_credit"`
}

const (
	DefaultOffice   = "McLean, VA"
	DefaultFlexName = "Flex Credit"
)

// WithDefaults fills empty fields so a partial config file still yields
// usable labels.
func (s Settings) WithDefaults() Settings {
	if s.DefaultOffice == "" {
		s.DefaultOffice = DefaultOffice
	}
	if s.FlexCreditLabel == "" {
		s.FlexCreditLabel = DefaultFlexName
	}
	return s
}

// Config is the quarter catalog plus settings, persisted together.
type Config struct {
	Quarters []QuarterConfig `yaml:"quarters"`
	Settings Settings        `yaml:"settings"`
}

func (Config) Filename() string   { return "config.yaml" }
func (Config) Encoding() Encoding { return EncodingYAML }

// ByKey returns the quarter with the given key.
func (c *Config) ByKey(key string) (QuarterConfig, bool) {
	for _, q := range c.Quarters {
		if q.Key == key {
			return q, true
		}
	}
	return QuarterConfig{}, false
}

// ByDate returns the quarter whose range contains the date. Dates outside
// every configured quarter are a representable state, not an error.
func (c *Config) ByDate(d calendar.Date) (QuarterConfig, bool) {
	for _, q := range c.Quarters {
		if q.Period().Contains(d) {
			return q, true
		}
	}
	return QuarterConfig{}, false
}

// ForYear returns the quarters whose year label matches.
func (c *Config) ForYear(year string) []QuarterConfig {
	var out []QuarterConfig
	for _, q := range c.Quarters {
		if q.Year == year {
			out = append(out, q)
		}
	}
	return out
}
