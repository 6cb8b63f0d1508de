package config

import "time"

// MonitorConfig defines configuration for the monitoring loop
type MonitorConfig struct {
	CheckIntervalSeconds int      `json:"check_interval" yaml:"check_interval" validate:"required,min=1"`
	HTTPTimeoutSeconds   int      `json:"http_timeout_seconds,omitempty" yaml:"http_timeout_seconds,omitempty" validate:"omitempty,min=1"`
	MaxConcurrentChecks  int      `json:"max_concurrent_checks,omitempty" yaml:"max_concurrent_checks,omitempty" validate:"omitempty,min=1"`
	MaxCycles            int      `json:"max_cycles,omitempty" yaml:"max_cycles,omitempty" validate:"omitempty,min=0"`
	WatchURLs            []string `json:"watch_urls,omitempty" yaml:"watch_urls,omitempty" validate:"omitempty,dive,url"`
	UserAgent            string   `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	AcceptLanguage       string   `json:"accept_language,omitempty" yaml:"accept_language,omitempty"`
	Referer              string   `json:"referer,omitempty" yaml:"referer,omitempty"`
}

// NewDefaultMonitorConfig creates default monitor configuration
func NewDefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		CheckIntervalSeconds: DefaultCheckIntervalSeconds,
		HTTPTimeoutSeconds:   DefaultHTTPTimeoutSeconds,
		MaxConcurrentChecks:  DefaultMaxConcurrentChecks,
		MaxCycles:            0, // 0 means run indefinitely
		WatchURLs:            []string{},
		UserAgent:            DefaultUserAgent,
		AcceptLanguage:       DefaultAcceptLanguage,
		Referer:              DefaultReferer,
	}
}

// CheckInterval returns the check interval as a time.Duration.
func (mc *MonitorConfig) CheckInterval() time.Duration {
	return time.Duration(mc.CheckIntervalSeconds) * time.Second
}

// HTTPTimeout returns the per-request fetch timeout as a time.Duration.
func (mc *MonitorConfig) HTTPTimeout() time.Duration {
	return time.Duration(mc.HTTPTimeoutSeconds) * time.Second
}
