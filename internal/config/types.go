package config

// LogLevel is the minimum level written to the log.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// Config is the top-level biobuilder configuration, corresponding to .biobuilder.yml.
type Config struct {
	ServerURL      string   `yaml:"server_url" koanf:"server_url"`
	Model          string   `yaml:"model" koanf:"model"`
	TimeoutSeconds int      `yaml:"timeout_seconds" koanf:"timeout_seconds"`
	ExportDir      string   `yaml:"export_dir" koanf:"export_dir"`
	LogLevel       LogLevel `yaml:"log_level" koanf:"log_level"`
	NoColor        bool     `yaml:"no_color" koanf:"no_color"`
}
