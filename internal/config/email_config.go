package config

import (
	"fmt"
	"time"
)

// EmailConfig defines configuration for change notification emails
type EmailConfig struct {
	From           string `json:"email_from" yaml:"email_from" validate:"required,email"`
	To             string `json:"email_to" yaml:"email_to" validate:"required,email"`
	Password       string `json:"email_password" yaml:"email_password" validate:"required"`
	SMTPHost       string `json:"smtp_host,omitempty" yaml:"smtp_host,omitempty" validate:"omitempty,hostname"`
	SMTPPort       int    `json:"smtp_port,omitempty" yaml:"smtp_port,omitempty" validate:"omitempty,min=1,max=65535"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultEmailConfig creates default email configuration
func NewDefaultEmailConfig() EmailConfig {
	return EmailConfig{
		SMTPHost:       DefaultSMTPHost,
		SMTPPort:       DefaultSMTPPort,
		TimeoutSeconds: DefaultSMTPTimeoutSeconds,
	}
}

// Addr returns the relay endpoint in host:port form.
func (ec *EmailConfig) Addr() string {
	return fmt.Sprintf("%s:%d", ec.SMTPHost, ec.SMTPPort)
}

// Timeout returns the SMTP session timeout as a time.Duration.
func (ec *EmailConfig) Timeout() time.Duration {
	return time.Duration(ec.TimeoutSeconds) * time.Second
}
