package config

import "os"

// Config holds all process configuration. It is built once in main and
// injected into the components that need it, so nothing reads the
// environment after startup.
type Config struct {
	Port       string
	JWTSecret  string
	AppBaseURL string

	DB   DBConfig
	SMTP SMTPConfig
}

type DBConfig struct {
	Host string
	User string
	Pass string
	Name string
	Port string
}

// SMTPConfig describes the outbound mail account. An empty Host disables
// email delivery entirely.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Load reads configuration from environment variables, falling back to
// development defaults where it is safe to do so.
func Load() Config {
	return Config{
		Port:       getenv("PORT", "8080"),
		JWTSecret:  getenv("JWT_SECRET", "your-secret-key"),
		AppBaseURL: getenv("APP_BASE_URL", "http://localhost:3000"),
		DB: DBConfig{
			Host: getenv("DB_HOST", "localhost"),
			User: getenv("DB_USER", "postgres"),
			Pass: getenv("DB_PASS", "postgres"),
			Name: getenv("DB_NAME", "connectapp"),
			Port: getenv("DB_PORT", "5432"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getenv("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     getenv("SMTP_FROM", "noreply@sparklink.app"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
