package settings

// EnvPrefix prefixes every environment variable read by the playground.
const EnvPrefix = "SAMPLE"

// Settings contains the playground host configuration. The sample config
// itself is fixed and never read from here.
type Settings struct {
	Log      *LogSettings
	Greeting *GreetingSettings
}

// LogSettings is bound to SAMPLE_LOG_LEVEL and SAMPLE_LOG_JSON.
type LogSettings struct {
	Level string
	JSON  bool `mapstructure:"json"`
}

// GreetingSettings is bound to SAMPLE_GREETING_DEFAULT_NAME.
type GreetingSettings struct {
	DefaultName string
}

func (s *LogSettings) ApplyDefault() {
	if s.Level == "" {
		s.Level = "info"
	}
}

func (s *GreetingSettings) ApplyDefault() {
	if s.DefaultName == "" {
		s.DefaultName = "World"
	}
}
