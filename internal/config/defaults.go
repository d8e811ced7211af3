package config

import "time"

// DefaultServerURL is where the BioBuilder API listens when run locally.
const DefaultServerURL = "http://localhost:8000"

// DefaultConfig returns a Config with sensible defaults. The timeout is
// generous because extraction over many documents is slow.
func DefaultConfig() *Config {
	return &Config{
		ServerURL:      DefaultServerURL,
		TimeoutSeconds: 300,
		ExportDir:      ".",
		LogLevel:       LogInfo,
	}
}

// Timeout returns the request timeout. Zero disables it.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
