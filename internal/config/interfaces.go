package config

import "time"

type Server interface {
	Host() string
	Port() int
	Address() string
	ReadTimeout() time.Duration
	RequestTimeout() time.Duration
	ShutdownTimeout() time.Duration
	AllowedOrigins() []string
}

type Logger interface {
	Level() string
	AsJSON() bool
}

type Database interface {
	DatabaseName() string
	PartsCollection() string
	DSN() string
}
