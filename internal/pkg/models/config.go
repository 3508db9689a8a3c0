package models

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Solana   SolanaConfig
	Jobs     JobsConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// SolanaConfig contains settlement network configuration.
// AuthorityKey is the base58-encoded backend authority private key that signs
// release/refund/expire instructions. An empty ProgramID disables on-chain
// settlement (offers then expire without a chain call).
type SolanaConfig struct {
	RPCEndpoint       string
	ProgramID         string
	AuthorityKey      string
	ConfirmTimeoutSec int
	ConfirmPollSec    int
	SkipPreflight     bool
}

// JobsConfig contains reconciliation job configuration. StaleClaimMinutes is
// how long a record may sit in a transient claim status before the job scans
// treat the claim as abandoned and pick it up again; it must comfortably
// exceed the longest settlement confirmation wait.
type JobsConfig struct {
	CronSecret          string
	BatchLimit          int
	TransferGraceDays   int
	ReleaseRetryMinutes int
	StaleClaimMinutes   int
	LockTTLSec          int
}
