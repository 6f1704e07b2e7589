package service

import "time"

// LogFilter narrows the panel event log. Zero times leave that bound open.
type LogFilter struct {
	From time.Time
	To   time.Time
	Type string
}

// AuthConfig holds the token settings for AuthService.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}
