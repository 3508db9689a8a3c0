package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/forgebay/escrow/internal/pkg/models"
)

// InitConfig loads configuration from the given env file (local development
// only) and then from environment variables.
func InitConfig(configPath string) *models.Config {
	env := GetEnv("APP_ENV", "local")
	if env == "local" {
		if err := godotenv.Load(configPath); err != nil {
			log.Println("error loading config from file", err)
		}
	}
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "escrow-service")
	configs.App.Environment = GetEnv("APP_ENV", "")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 9980)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 0)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 0)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Database config
	configs.Database.Host = GetEnv("DB_HOST", "")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 5432)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 0)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 0)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 0)

	// NATS config
	configs.NATS.URL = GetEnv("NATS_URL", "")

	// Solana config
	configs.Solana.RPCEndpoint = GetEnv("SOLANA_RPC_ENDPOINT", "")
	configs.Solana.ProgramID = GetEnv("SOLANA_PROGRAM_ID", "")
	configs.Solana.AuthorityKey = GetEnv("SOLANA_AUTHORITY_KEY", "")
	configs.Solana.ConfirmTimeoutSec = GetEnvAsInt("SOLANA_CONFIRM_TIMEOUT_SEC", 30)
	configs.Solana.ConfirmPollSec = GetEnvAsInt("SOLANA_CONFIRM_POLL_SEC", 2)
	configs.Solana.SkipPreflight = GetEnvAsBool("SOLANA_SKIP_PREFLIGHT", false)

	// Jobs config
	configs.Jobs.CronSecret = GetEnv("JOBS_CRON_SECRET", "")
	configs.Jobs.BatchLimit = GetEnvAsInt("JOBS_BATCH_LIMIT", 100)
	configs.Jobs.TransferGraceDays = GetEnvAsInt("JOBS_TRANSFER_GRACE_DAYS", 7)
	configs.Jobs.ReleaseRetryMinutes = GetEnvAsInt("JOBS_RELEASE_RETRY_MINUTES", 5)
	configs.Jobs.StaleClaimMinutes = GetEnvAsInt("JOBS_STALE_CLAIM_MINUTES", 15)
	configs.Jobs.LockTTLSec = GetEnvAsInt("JOBS_LOCK_TTL_SEC", 120)

	return configs
}

// GetEnv retrieves an environment variable with a fallback default
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt retrieves an environment variable as an int with a fallback default
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsBool retrieves an environment variable as a bool with a fallback default
func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
