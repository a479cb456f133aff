// Package config carga la configuración del servidor de desarrollo desde el
// entorno (y un .env opcional).
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr      string
	JWTSecret string
	TokenTTL  time.Duration
	TLSCert   string
	TLSKey    string
	LogLevel  string
}

// TLS indica si hay certificado y clave configurados
func (c *Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// Load exige SOCIAL_JWT_SECRET
func Load() (*Config, error) {
	cfg, err := load("")
	if err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("SOCIAL_JWT_SECRET environment variable is not set")
	}
	return cfg, nil
}

// LoadWithDefaults usa un secreto fijo si no hay uno. Solo para desarrollo
func LoadWithDefaults() (*Config, error) {
	return load("dev-secret-change-me")
}

// LoadDotEnv carga variables de los ficheros dados (o .env) sin pisar las
// que ya existen. Que no exista el fichero no es error
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

func load(secret string) (*Config, error) {
	ttl, err := getEnvDuration("SOCIAL_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Addr:      getEnv("SOCIAL_ADDR", ":3000"),
		JWTSecret: getEnv("SOCIAL_JWT_SECRET", secret),
		TokenTTL:  ttl,
		TLSCert:   getEnv("SOCIAL_TLS_CERT", ""),
		TLSKey:    getEnv("SOCIAL_TLS_KEY", ""),
		LogLevel:  getEnv("SOCIAL_LOG_LEVEL", "info"),
	}
	if (cfg.TLSCert == "") != (cfg.TLSKey == "") {
		return nil, errors.New("SOCIAL_TLS_CERT and SOCIAL_TLS_KEY must be set together")
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
		}
		return d, nil
	}
	return defaultVal, nil
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Addr: %s, TLS: %t, TokenTTL: %s, JWT: *** (masked) ***}", c.Addr, c.TLS(), c.TokenTTL)
}
