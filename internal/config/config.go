package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config regroupe toute la configuration du serveur, lue depuis l'environnement
type Config struct {
	Port        string
	Environment string

	Scylla ScyllaConfig
	Redis  RedisConfig
	SMTP   SMTPConfig

	JWTSecret        string
	SessionSecret    string
	SettingsCacheTTL time.Duration
	CORSOrigins      []string

	// Compte administrateur ; connexion désactivée si le hash est vide
	AdminEmail        string
	AdminPasswordHash string
	AdminTokenTTL     time.Duration
}

type ScyllaConfig struct {
	Hosts    []string
	Keyspace string
	Username string
	Password string
	Timeout  time.Duration
	NumConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Load charge le fichier .env (s'il existe) puis construit la configuration
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé, on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
	return FromEnv()
}

// FromEnv construit la configuration sans toucher au fichier .env
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:        envOrDefault("PORT", "8080"),
		Environment: envOrDefault("ENVIRONMENT", "development"),
		Scylla: ScyllaConfig{
			Hosts:    splitList(os.Getenv("SCYLLA_HOSTS")),
			Keyspace: os.Getenv("SCYLLA_KEYSPACE"),
			Username: os.Getenv("SCYLLA_USERNAME"),
			Password: os.Getenv("SCYLLA_PASSWORD"),
			Timeout:  5 * time.Second,
			NumConns: 20,
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_HOST"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     587,
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     envOrDefault("SMTP_FROM", "noreply@localhost"),
		},
		JWTSecret:        os.Getenv("JWT_SECRET"),
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		SettingsCacheTTL: time.Hour,
		CORSOrigins:      splitList(os.Getenv("CORS_ORIGINS")),

		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminTokenTTL:     12 * time.Hour,
	}

	if v := os.Getenv("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("SMTP_PORT invalide: %w", err)
		}
		cfg.SMTP.Port = port
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("REDIS_DB invalide: %w", err)
		}
		cfg.Redis.DB = db
	}

	if v := os.Getenv("SETTINGS_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SETTINGS_CACHE_TTL invalide: %w", err)
		}
		cfg.SettingsCacheTTL = ttl
	}

	if v := os.Getenv("ADMIN_TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_TOKEN_TTL invalide: %w", err)
		}
		cfg.AdminTokenTTL = ttl
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if len(c.Scylla.Hosts) == 0 {
		missing = append(missing, "SCYLLA_HOSTS")
	}
	if c.Scylla.Keyspace == "" {
		missing = append(missing, "SCYLLA_KEYSPACE")
	}
	if c.Redis.Addr == "" {
		missing = append(missing, "REDIS_HOST")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}
	if c.AdminPasswordHash != "" && c.AdminEmail == "" {
		missing = append(missing, "ADMIN_EMAIL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("variables d'environnement manquantes: %s", strings.Join(missing, ", "))
	}
	return nil
}

// IsProduction indique si les cookies doivent être marqués Secure
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
