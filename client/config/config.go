// Package config carga la configuración del cliente desde el entorno y un .env
// opcional. Los flags de main pueden sobrescribir cualquier campo.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const DefaultAPIURL = "http://localhost:3000"

type Config struct {
	APIURL     string
	Timeout    time.Duration
	DataDir    string
	Passphrase string
	LogFile    string
	LogLevel   string
	CACert     string // PEM extra de confianza para TLS
}

func Load() (*Config, error) {
	timeout, err := getEnvDuration("SOCIAL_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	dataDir := getEnv("SOCIAL_DATA_DIR", "")
	if dataDir == "" {
		dataDir, err = defaultDataDir()
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		APIURL:     getEnv("SOCIAL_API_URL", DefaultAPIURL),
		Timeout:    timeout,
		DataDir:    dataDir,
		Passphrase: getEnv("SOCIAL_STORE_PASSPHRASE", ""),
		LogFile:    getEnv("SOCIAL_LOG_FILE", ""),
		LogLevel:   getEnv("SOCIAL_LOG_LEVEL", "info"),
		CACert:     getEnv("SOCIAL_CA_CERT", ""),
	}
	return cfg, nil
}

// LoadDotEnv carga los ficheros dados (o .env) sin pisar variables existentes
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

// LogPath es LogFile o, si está vacío, social.log dentro de DataDir
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "social.log")
}

func defaultDataDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "social"), nil
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
	pass := "none"
	if c.Passphrase != "" {
		pass = "*** (masked) ***"
	}
	return fmt.Sprintf("Config{API: %s, Timeout: %s, DataDir: %s, Passphrase: %s}", c.APIURL, c.Timeout, c.DataDir, pass)
}
