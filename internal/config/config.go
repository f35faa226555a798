package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAnonymizerURL is the anonymization service used when ANONYMIZER_URL
// is unset. Override at build time with
//
//	-ldflags "-X github.com/gonkalabs/noface/internal/config.DefaultAnonymizerURL=http://anon:3000"
var DefaultAnonymizerURL = "http://localhost:3000"

// Cfg holds all runtime configuration loaded from environment variables.
type Cfg struct {
	// Anonymization service base URL; requests go to {AnonymizerURL}/anonymize.
	AnonymizerURL string

	// Server
	ListenAddr   string // e.g. :8080
	CORSAllowAll bool   // CORS_ALLOW_ALL=true allows any origin on /api

	// Uploads
	MaxUploadBytes int64         // MAX_UPLOAD_BYTES, default 10 MiB
	SessionTTL     time.Duration // SESSION_TTL, idle time before UI state is dropped

	// Logging
	LogLevel string // debug|info|warn|error
	LogFile  string // optional rotating log file
}

// Load reads .env (if present) then environment variables and returns Cfg.
func Load() (*Cfg, error) {
	// Best-effort: load .env from current directory
	_ = godotenv.Load()

	anonURL := strings.TrimSpace(os.Getenv("ANONYMIZER_URL"))
	if anonURL == "" {
		anonURL = DefaultAnonymizerURL
	}
	anonURL = NormalizeAnonymizerURL(anonURL)

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}
	if _, err := strconv.Atoi(port); err != nil {
		return nil, fmt.Errorf("config: PORT must be a number, got %q", port)
	}

	maxUpload := int64(10 << 20)
	if raw := strings.TrimSpace(os.Getenv("MAX_UPLOAD_BYTES")); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("config: MAX_UPLOAD_BYTES must be a positive integer, got %q", raw)
		}
		maxUpload = n
	}

	sessionTTL := time.Hour
	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config: SESSION_TTL: %w", err)
		}
		sessionTTL = d
	}

	logLevel := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if logLevel == "" {
		logLevel = "info"
	}

	return &Cfg{
		AnonymizerURL:  anonURL,
		ListenAddr:     ":" + port,
		CORSAllowAll:   envBool("CORS_ALLOW_ALL"),
		MaxUploadBytes: maxUpload,
		SessionTTL:     sessionTTL,
		LogLevel:       logLevel,
		LogFile:        strings.TrimSpace(os.Getenv("LOG_FILE")),
	}, nil
}

// NormalizeAnonymizerURL strips trailing slashes and a trailing /anonymize so
// that both the base URL and the full endpoint URL are accepted.
func NormalizeAnonymizerURL(u string) string {
	u = strings.TrimRight(strings.TrimSpace(u), "/")
	return strings.TrimSuffix(u, "/anonymize")
}

func envBool(key string) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	return raw == "1" || strings.EqualFold(raw, "true")
}
