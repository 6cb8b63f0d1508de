package config

const (
	// Monitor Defaults
	DefaultCheckIntervalSeconds = 300
	DefaultHTTPTimeoutSeconds   = 10
	DefaultMaxConcurrentChecks  = 10
	DefaultUserAgent            = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/110.0.0.0 Safari/537.36"
	DefaultAcceptLanguage       = "en-US,en;q=0.9"
	DefaultReferer              = "https://www.google.com/"

	// Email Defaults
	DefaultSMTPHost           = "smtp.gmail.com"
	DefaultSMTPPort           = 465
	DefaultSMTPTimeoutSeconds = 15

	// Storage Defaults
	DefaultDatabasePath = "websites.db"

	// Log Defaults
	DefaultLogFile       = "monitor.log"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultMaxLogSizeMB  = 1
	DefaultMaxLogBackups = 0
)

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	MonitorConfig MonitorConfig `json:"monitor_config,omitempty" yaml:"monitor_config,omitempty"`
	EmailConfig   EmailConfig   `json:"email_config,omitempty" yaml:"email_config,omitempty"`
	StorageConfig StorageConfig `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	LogConfig     LogConfig     `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		MonitorConfig: NewDefaultMonitorConfig(),
		EmailConfig:   NewDefaultEmailConfig(),
		StorageConfig: NewDefaultStorageConfig(),
		LogConfig:     NewDefaultLogConfig(),
	}
}
