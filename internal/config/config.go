package config

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
)

type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
	DSN      string `json:"dsn"`
}

type Config struct {
	Port     int            `json:"port"`
	Database DatabaseConfig `json:"database"`

	// Cookie sessions are encrypted and signed with two independent keys,
	// both hex encoded. The JWT secret defaults to the signing key when
	// left empty, matching the single-key token setup.
	CookieEncryptionKey string `json:"cookie_encryption_key"`
	CookieSigningKey    string `json:"cookie_signing_key"`
	JWTSecret           string `json:"jwt_secret"`

	// SecureCookie must only be disabled for local plaintext-HTTP
	// development.
	SecureCookie bool `json:"secure_cookie"`

	UseFSAssets bool   `json:"use_fs_assets"`
	AssetsDir   string `json:"assets_dir"`
	LogLevel    string `json:"log_level"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 4207
	}
	if cfg.Database.DSN == "" && cfg.Database.DBName == "" {
		return nil, fmt.Errorf("database.dsn or database.dbname is required")
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if _, err := decodeKey(cfg.CookieEncryptionKey, "cookie_encryption_key"); err != nil {
		return nil, err
	}
	if _, err := decodeKey(cfg.CookieSigningKey, "cookie_signing_key"); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = cfg.CookieSigningKey
	}
	if cfg.UseFSAssets && cfg.AssetsDir == "" {
		cfg.AssetsDir = "web/public"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return &cfg, nil
}

// CookieKeys returns the decoded signing and encryption keys.
func (c *Config) CookieKeys() (signing, encryption []byte) {
	signing, _ = hex.DecodeString(c.CookieSigningKey)
	encryption, _ = hex.DecodeString(c.CookieEncryptionKey)
	return signing, encryption
}

func decodeKey(value, name string) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("%s is required", name)
	}
	key, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%s must be hex encoded: %w", name, err)
	}
	switch len(key) {
	case 16, 24, 32, 64:
		return key, nil
	default:
		return nil, fmt.Errorf("%s has invalid length %d", name, len(key))
	}
}
