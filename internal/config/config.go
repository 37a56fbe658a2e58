package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

// MaxUploadSize is the fixed cap on a single uploaded file (10 MiB).
const MaxUploadSize int64 = 10 << 20

type Config struct {
	App
	PostgreSQL
	HTTP
	Auth
}

type App struct {
	ContentDirectory string
}

type PostgreSQL struct {
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
}

type HTTP struct {
	Host         string
	Port         string
	IdleTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Auth struct {
	JWTSecret string
	TokenTTL  time.Duration
}

func Load(cmd *cli.Command) *Config {
	return &Config{
		App: App{
			ContentDirectory: cmd.String("content-dir"),
		},
		PostgreSQL: PostgreSQL{
			Host:     cmd.String("pg-host"),
			Port:     cmd.String("pg-port"),
			Username: cmd.String("pg-username"),
			Password: cmd.String("pg-password"),
			DBName:   cmd.String("pg-dbname"),
		},
		HTTP: HTTP{
			Host:         cmd.String("http-host"),
			Port:         cmd.String("http-port"),
			IdleTimeout:  cmd.Duration("http-idle-timeout"),
			ReadTimeout:  cmd.Duration("http-read-timeout"),
			WriteTimeout: cmd.Duration("http-write-timeout"),
		},
		Auth: Auth{
			JWTSecret: cmd.String("jwt-secret"),
			TokenTTL:  cmd.Duration("jwt-ttl"),
		},
	}
}
