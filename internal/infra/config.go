package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment
// variables. It is built once at process entry and passed by pointer into
// every component; nothing mutates it afterwards.
type Config struct {
	AppEnv string
	Port   string

	// Print geometry. Paper sizes and millimeter border widths are converted
	// to pixels at this resolution.
	PrintDPI float64

	// Inbound payload cap, matching the original deployment's 10mb limit.
	BodyLimitBytes int64

	// Google service account used for both Drive and Sheets. When the keyfile
	// is absent the service falls back to the filesystem publisher and a
	// discarding ledger, which keeps development environments credential-free.
	GoogleKeyFile string

	DrivePendingFolderID   string
	DriveConfirmedFolderID string

	LedgerSpreadsheetID string
	LedgerSheetName     string
	LedgerDedupeOrders  bool

	CommerceBaseURL string
	CommerceKey     string
	CommerceSecret  string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	StoragePath string

	AllowedOrigins []string

	HTTPReadTimeout     time.Duration
	HTTPWriteTimeout    time.Duration
	HTTPIdleTimeout     time.Duration
	ExternalCallTimeout time.Duration
	RateLimitPerMin     int
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:                 getEnv("APP_ENV", "development"),
		Port:                   getEnv("PORT", "3000"),
		PrintDPI:               getEnvFloat("PRINT_DPI", 600),
		BodyLimitBytes:         int64(getEnvInt("BODY_LIMIT_BYTES", 10<<20)),
		GoogleKeyFile:          os.Getenv("GOOGLE_KEYFILE"),
		DrivePendingFolderID:   os.Getenv("DRIVE_PENDING_FOLDER_ID"),
		DriveConfirmedFolderID: os.Getenv("DRIVE_CONFIRMED_FOLDER_ID"),
		LedgerSpreadsheetID:    os.Getenv("LEDGER_SPREADSHEET_ID"),
		LedgerSheetName:        getEnv("LEDGER_SHEET_NAME", "Orders"),
		LedgerDedupeOrders:     getEnvBool("LEDGER_DEDUPE_ORDERS", false),
		CommerceBaseURL:        os.Getenv("COMMERCE_BASE_URL"),
		CommerceKey:            os.Getenv("COMMERCE_CONSUMER_KEY"),
		CommerceSecret:         os.Getenv("COMMERCE_CONSUMER_SECRET"),
		SMTPHost:               os.Getenv("SMTP_HOST"),
		SMTPPort:               getEnvInt("SMTP_PORT", 587),
		SMTPUser:               os.Getenv("SMTP_USER"),
		SMTPPassword:           os.Getenv("SMTP_PASSWORD"),
		MailFrom:               getEnv("MAIL_FROM", "orders@localhost"),
		StoragePath:            getEnv("STORAGE_PATH", "./data"),
		AllowedOrigins:         splitList(os.Getenv("ALLOWED_ORIGINS")),
		HTTPReadTimeout:        time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 30)),
		HTTPWriteTimeout:       time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 60)),
		HTTPIdleTimeout:        time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		ExternalCallTimeout:    time.Second * time.Duration(getEnvInt("EXTERNAL_CALL_TIMEOUT_SECONDS", 45)),
		RateLimitPerMin:        getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	if cfg.PrintDPI <= 0 {
		return nil, fmt.Errorf("PRINT_DPI must be positive")
	}

	if cfg.GoogleKeyFile != "" {
		if cfg.DrivePendingFolderID == "" || cfg.DriveConfirmedFolderID == "" {
			return nil, fmt.Errorf("DRIVE_PENDING_FOLDER_ID and DRIVE_CONFIRMED_FOLDER_ID are required with GOOGLE_KEYFILE")
		}
		if cfg.LedgerSpreadsheetID == "" {
			return nil, fmt.Errorf("LEDGER_SPREADSHEET_ID is required with GOOGLE_KEYFILE")
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func splitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
