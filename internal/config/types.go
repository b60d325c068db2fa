package config

// Config is the .meister/config.yml schema.
type Config struct {
	Version int          `yaml:"version"`
	Bank    string       `yaml:"bank"`
	Store   StoreConfig  `yaml:"store"`
	Quiz    QuizConfig   `yaml:"quiz"`
	UI      UIConfig     `yaml:"ui"`
	Server  ServerConfig `yaml:"server"`
}

// StoreConfig selects the question backend.
type StoreConfig struct {
	Driver    string `yaml:"driver"`
	DSN       string `yaml:"dsn"`
	LatencyMS *int   `yaml:"latency_ms"`
}

// QuizConfig holds run defaults.
type QuizConfig struct {
	TotalDuration int  `yaml:"total_duration"`
	TransitionMS  *int `yaml:"transition_ms"`
	PageSize      int  `yaml:"page_size"`
}

// UIConfig controls terminal output.
type UIConfig struct {
	Mode    string `yaml:"mode"`
	NoColor bool   `yaml:"no_color"`
}

// ServerConfig configures `meister serve`.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}
