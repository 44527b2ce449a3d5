package utils

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("LOGOFORGE_JWT_SECRET")
	if secret == "" {
		// dev default (change for demo / production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("LOGOFORGE_JWT_ISSUER")
	if issuer == "" {
		issuer = "logoforge"
	}

	hours := 24
	if ttl := os.Getenv("LOGOFORGE_JWT_TTL_HOURS"); ttl != "" {
		if n, err := strconv.Atoi(ttl); err == nil && n > 0 {
			hours = n
		}
	}

	return AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   issuer,
		JWTDuration: time.Duration(hours) * time.Hour,
	}
}

type ServerConfig struct {
	Addr          string
	ExportDir     string
	CacheCapacity int
}

func LoadServerConfig() ServerConfig {
	addr := os.Getenv("LOGOFORGE_HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	exportDir := os.Getenv("LOGOFORGE_EXPORT_DIR")
	if exportDir == "" {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			home = "."
		}
		exportDir = filepath.Join(home, ".logoforge", "exports")
	}

	capacity := 256
	if s := os.Getenv("LOGOFORGE_CACHE_CAPACITY"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			capacity = n
		}
	}

	return ServerConfig{
		Addr:          addr,
		ExportDir:     exportDir,
		CacheCapacity: capacity,
	}
}
