package config

import (
	"strings"
	"time"
)

// Defaults applied by Normalize.
const (
	DefaultBank         = ".meister/questions.yml"
	DefaultDriver       = "memory"
	DefaultLatencyMS    = 500
	DefaultTransitionMS = 300
	DefaultPageSize     = 10
	DefaultUIMode       = "auto"
	DefaultServerAddr   = ":8080"
)

// Normalize fills defaults and trims string fields.
func Normalize(cfg *Config) {
	cfg.Bank = strings.TrimSpace(cfg.Bank)
	if cfg.Bank == "" {
		cfg.Bank = DefaultBank
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = DefaultDriver
	}
	if cfg.Store.LatencyMS == nil {
		latency := DefaultLatencyMS
		cfg.Store.LatencyMS = &latency
	}
	if cfg.Quiz.TransitionMS == nil {
		transition := DefaultTransitionMS
		cfg.Quiz.TransitionMS = &transition
	}
	if cfg.Quiz.PageSize == 0 {
		cfg.Quiz.PageSize = DefaultPageSize
	}
	cfg.UI.Mode = strings.ToLower(strings.TrimSpace(cfg.UI.Mode))
	if cfg.UI.Mode == "" {
		cfg.UI.Mode = DefaultUIMode
	}
	cfg.Server.Addr = strings.TrimSpace(cfg.Server.Addr)
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
}

// Latency returns the memory store delay.
func (c Config) Latency() time.Duration {
	if c.Store.LatencyMS == nil {
		return DefaultLatencyMS * time.Millisecond
	}
	return time.Duration(*c.Store.LatencyMS) * time.Millisecond
}

// TransitionDelay returns the pause between questions.
func (c Config) TransitionDelay() time.Duration {
	if c.Quiz.TransitionMS == nil {
		return DefaultTransitionMS * time.Millisecond
	}
	return time.Duration(*c.Quiz.TransitionMS) * time.Millisecond
}
