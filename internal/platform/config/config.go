package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	// Payment processor gateway
	ProcessorBaseURL    string
	ProcessorMerchantID string
	ProcessorPublicKey  string
	ProcessorPrivateKey string
	// Beneficiary account -> processor merchant account. Only accounts
	// listed here can be charged through the processor.
	MerchantAccounts   map[string]string
	SubscriptionPlanID string

	// Reconciliation policy
	ThankYouThreshold  decimal.Decimal
	ChargebackFine     decimal.Decimal
	ReconcileWindow    time.Duration
	ReconcileCronSpec  string

	// Donor caging queue
	RedisAddr string

	// Outbound HTTP services
	NotifierBaseURL  string
	AdminEmail       string
	BlobstoreBaseURL string
	BlobstoreBucket  string
	DirectoryBaseURL string
	DirectoryAPIKey  string

	// Public donate endpoint rate limit, ulule/limiter format ("30-M").
	DonateRateLimit string

	// Browser origins allowed to call the API (donation form, admin UI).
	AllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "donate-backend")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("PROCESSOR_BASE_URL", "")
	viper.SetDefault("PROCESSOR_MERCHANT_ID", "")
	viper.SetDefault("PROCESSOR_PUBLIC_KEY", "")
	viper.SetDefault("PROCESSOR_PRIVATE_KEY", "")
	viper.SetDefault("MERCHANT_ACCOUNTS", "ACTION=action_usd,NERF=nerf_usd")
	viper.SetDefault("SUBSCRIPTION_PLAN_ID", "monthly_gift")
	viper.SetDefault("THANK_YOU_THRESHOLD", "100.00")
	viper.SetDefault("CHARGEBACK_FINE", "15.00")
	viper.SetDefault("RECONCILE_WINDOW_DAYS", 31)
	viper.SetDefault("RECONCILE_CRON_SPEC", "0 3 * * *")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("NOTIFIER_BASE_URL", "")
	viper.SetDefault("ADMIN_EMAIL", "")
	viper.SetDefault("BLOBSTORE_BASE_URL", "")
	viper.SetDefault("BLOBSTORE_BUCKET", "reconciliation-reports")
	viper.SetDefault("DIRECTORY_BASE_URL", "")
	viper.SetDefault("DIRECTORY_API_KEY", "")
	viper.SetDefault("DONATE_RATE_LIMIT", "30-M")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google OAuth will not function.")
	}

	cfg.ProcessorBaseURL = viper.GetString("PROCESSOR_BASE_URL")
	cfg.ProcessorMerchantID = viper.GetString("PROCESSOR_MERCHANT_ID")
	cfg.ProcessorPublicKey = viper.GetString("PROCESSOR_PUBLIC_KEY")
	cfg.ProcessorPrivateKey = viper.GetString("PROCESSOR_PRIVATE_KEY")
	if cfg.ProcessorBaseURL == "" {
		log.Println("Warning: PROCESSOR_BASE_URL not set. Processor-backed donations will not function.")
	}
	cfg.MerchantAccounts = parseMerchantAccounts(viper.GetString("MERCHANT_ACCOUNTS"))
	cfg.SubscriptionPlanID = viper.GetString("SUBSCRIPTION_PLAN_ID")

	threshold, err := decimal.NewFromString(viper.GetString("THANK_YOU_THRESHOLD"))
	if err != nil {
		threshold = decimal.NewFromInt(100)
		log.Printf("Warning: Invalid THANK_YOU_THRESHOLD. Defaulting to %s.\n", threshold.String())
	}
	cfg.ThankYouThreshold = threshold

	fine, err := decimal.NewFromString(viper.GetString("CHARGEBACK_FINE"))
	if err != nil {
		fine = decimal.NewFromInt(15)
		log.Printf("Warning: Invalid CHARGEBACK_FINE. Defaulting to %s.\n", fine.String())
	}
	cfg.ChargebackFine = fine

	cfg.ReconcileWindow = time.Duration(viper.GetInt("RECONCILE_WINDOW_DAYS")) * 24 * time.Hour
	cfg.ReconcileCronSpec = viper.GetString("RECONCILE_CRON_SPEC")

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.NotifierBaseURL = viper.GetString("NOTIFIER_BASE_URL")
	cfg.AdminEmail = viper.GetString("ADMIN_EMAIL")
	cfg.BlobstoreBaseURL = viper.GetString("BLOBSTORE_BASE_URL")
	cfg.BlobstoreBucket = viper.GetString("BLOBSTORE_BUCKET")
	cfg.DirectoryBaseURL = viper.GetString("DIRECTORY_BASE_URL")
	cfg.DirectoryAPIKey = viper.GetString("DIRECTORY_API_KEY")
	cfg.DonateRateLimit = viper.GetString("DONATE_RATE_LIMIT")

	for _, origin := range strings.Split(viper.GetString("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	return cfg, nil
}

// parseMerchantAccounts decodes "ACCOUNT=merchant_id,..." pairs.
func parseMerchantAccounts(raw string) map[string]string {
	accounts := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		accounts[parts[0]] = parts[1]
	}
	return accounts
}
