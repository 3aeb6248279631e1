package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreSheets   = "sheets"
	StorePostgres = "postgres"

	SessionMemory = "memory"
	SessionRedis  = "redis"
)

type Config struct {
	ServerPort  string
	GinMode     string
	LogLevel    string
	LogEncoding string

	TwilioAPIURL         string
	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string

	StoreBackend          string
	GoogleSheetID         string
	GoogleCredentialsFile string
	GoogleCredentialsJSON string
	ProductsRange         string
	OrdersSheet           string
	DatabaseURL           string

	SessionBackend string
	RedisURL       string
	SessionTimeout int
	StoreTimeout   int

	BusinessName       string
	PaymentLinkBaseURL string
	PaymentAlias       string
}

func Load() *Config {
	// Load .env file if exists
	godotenv.Load()

	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "release"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogEncoding: getEnv("LOG_ENCODING", "json"),

		TwilioAPIURL:         getEnv("TWILIO_API_URL", "https://api.twilio.com"),
		TwilioAccountSID:     getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:      getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioWhatsAppNumber: getEnv("TWILIO_WHATSAPP_NUMBER", ""),

		StoreBackend:          getEnv("STORE_BACKEND", StoreSheets),
		GoogleSheetID:         getEnv("GOOGLE_SHEET_ID", ""),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		GoogleCredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
		ProductsRange:         getEnv("SHEETS_PRODUCTS_RANGE", "Productos!A2:F"),
		OrdersSheet:           getEnv("SHEETS_ORDERS_SHEET", "Pedidos"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),

		SessionBackend: getEnv("SESSION_BACKEND", SessionMemory),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		SessionTimeout: getEnvAsInt("SESSION_TIMEOUT", 3600),
		StoreTimeout:   getEnvAsInt("STORE_TIMEOUT", 15),

		BusinessName:       getEnv("BUSINESS_NAME", "nuestra tienda"),
		PaymentLinkBaseURL: getEnv("PAYMENT_LINK_BASE_URL", "https://pagos.example.com/checkout"),
		PaymentAlias:       getEnv("PAYMENT_ALIAS", ""),
	}
}

// Validate reports configurations the selected backends cannot start with.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreSheets:
		if c.GoogleSheetID == "" {
			return errors.New("GOOGLE_SHEET_ID is required for the sheets store backend")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store backend")
		}
	default:
		return errors.New("STORE_BACKEND must be one of: sheets, postgres")
	}

	switch c.SessionBackend {
	case SessionMemory, SessionRedis:
	default:
		return errors.New("SESSION_BACKEND must be one of: memory, redis")
	}
	return nil
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTimeout) * time.Second
}

func (c *Config) StoreCallTimeout() time.Duration {
	return time.Duration(c.StoreTimeout) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
