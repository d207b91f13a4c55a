package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"club-finance-backend/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	JWT          JWTConfig          `yaml:"jwt"`
	Log          LogConfig          `yaml:"log"`
	Approval     ApprovalConfig     `yaml:"approval"`
	Notification NotificationConfig `yaml:"notification"`
	Scheduler    SchedulerConfig    `yaml:"scheduler"`
	PayrollRuns  []PayrollRunConfig `yaml:"payroll_runs"`
	Migrations   MigrationsConfig   `yaml:"migrations"`
}

// ServerConfig contains the HTTP API and gRPC health listener settings
type ServerConfig struct {
	Host                  string   `yaml:"host"`
	HTTPPort              int      `yaml:"http_port"`
	GRPCPort              int      `yaml:"grpc_port"`
	RequestTimeoutSeconds int      `yaml:"request_timeout_seconds"`
	AllowedOrigins        []string `yaml:"allowed_origins"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host                   string `yaml:"host"`
	Port                   int    `yaml:"port"`
	User                   string `yaml:"user"`
	Password               string `yaml:"password"`
	Database               string `yaml:"database"`
	SSLMode                string `yaml:"ssl_mode"`
	PoolSize               int    `yaml:"pool_size"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// ApprovalConfig holds the fixed identities and accounts passed to the
// approval procedures.
type ApprovalConfig struct {
	SystemApproverID       int32            `yaml:"system_approver_id"`
	ManualLedgerApproverID int32            `yaml:"manual_ledger_approver_id"`
	PayrollAccounts        map[string]int32 `yaml:"payroll_accounts"`
	AssetAccounts          map[string]int32 `yaml:"asset_accounts"`
}

// NotificationConfig contains SendGrid settings. An empty API key disables
// notifications.
type NotificationConfig struct {
	SendGridAPIKey string   `yaml:"sendgrid_api_key"`
	FromEmail      string   `yaml:"from_email"`
	FromName       string   `yaml:"from_name"`
	Recipients     []string `yaml:"recipients"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	MonthlyPayroll      string `yaml:"monthly_payroll"`
	PendingLedgerDigest string `yaml:"pending_ledger_digest"`
}

// PayrollRunConfig is one (department, population) pair processed by the
// monthly payroll job.
type PayrollRunConfig struct {
	DepartmentID int32  `yaml:"department_id"`
	Population   string `yaml:"population"`
}

type MigrationsConfig struct {
	Path      string `yaml:"path"`
	AutoApply bool   `yaml:"auto_apply"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, applies environment overrides and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}
	if val := os.Getenv("DB_POOL_SIZE"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.PoolSize)
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("HTTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.HTTPPort)
	}
	if val := os.Getenv("GRPC_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.GRPCPort)
	}

	// Notification
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Notification.SendGridAPIKey = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port: %d", c.Server.HTTPPort)
	}
	if c.Server.GRPCPort < 0 || c.Server.GRPCPort > 65535 {
		return fmt.Errorf("invalid grpc port: %d", c.Server.GRPCPort)
	}
	if c.Server.RequestTimeoutSeconds <= 0 {
		c.Server.RequestTimeoutSeconds = 60
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.PoolSize < 0 {
		return fmt.Errorf("invalid database pool size: %d", c.Database.PoolSize)
	}
	if c.Database.PoolSize == 0 {
		c.Database.PoolSize = 3
	}
	if c.Database.ConnMaxLifetimeMinutes == 0 {
		c.Database.ConnMaxLifetimeMinutes = 30
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}

	if err := c.Approval.applyDefaults(); err != nil {
		return err
	}

	if c.Notification.SendGridAPIKey != "" {
		if c.Notification.FromEmail == "" {
			return fmt.Errorf("notification from_email is required when sendgrid is enabled")
		}
		if len(c.Notification.Recipients) == 0 {
			return fmt.Errorf("notification recipients are required when sendgrid is enabled")
		}
	}

	if c.Scheduler.MonthlyPayroll == "" {
		c.Scheduler.MonthlyPayroll = "0 0 6 1 * *" // 1st of month at 6 AM UTC
	}
	if c.Scheduler.PendingLedgerDigest == "" {
		c.Scheduler.PendingLedgerDigest = "0 0 8 * * *" // Daily at 8 AM UTC
	}

	for i, run := range c.PayrollRuns {
		if run.DepartmentID <= 0 {
			return fmt.Errorf("payroll_runs[%d]: department_id is required", i)
		}
		if _, err := domain.ParsePopulation(run.Population); err != nil {
			return fmt.Errorf("payroll_runs[%d]: %w", i, err)
		}
	}

	if c.Migrations.Path == "" {
		c.Migrations.Path = "migrations"
	}
	return nil
}

func (a *ApprovalConfig) applyDefaults() error {
	if a.SystemApproverID == 0 {
		a.SystemApproverID = 1
	}
	if a.ManualLedgerApproverID == 0 {
		a.ManualLedgerApproverID = 1
	}
	if a.PayrollAccounts == nil {
		a.PayrollAccounts = map[string]int32{}
	}
	for pop, account := range map[domain.Population]int32{
		domain.PopulationAthlete: 8,
		domain.PopulationStaff:   9,
	} {
		if _, ok := a.PayrollAccounts[string(pop)]; !ok {
			a.PayrollAccounts[string(pop)] = account
		}
	}
	if a.AssetAccounts == nil {
		a.AssetAccounts = map[string]int32{}
	}
	for cat, account := range map[domain.AssetCategory]int32{
		domain.AssetRealEstate: 2,
		domain.AssetVehicle:    3,
		domain.AssetMovable:    4,
	} {
		if _, ok := a.AssetAccounts[string(cat)]; !ok {
			a.AssetAccounts[string(cat)] = account
		}
	}
	for name := range a.PayrollAccounts {
		if _, err := domain.ParsePopulation(name); err != nil {
			return fmt.Errorf("approval.payroll_accounts: unknown population %q", name)
		}
	}
	for name := range a.AssetAccounts {
		if _, err := domain.ParseAssetCategory(name); err != nil {
			return fmt.Errorf("approval.asset_accounts: unknown category %q", name)
		}
	}
	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetHTTPAddress returns the HTTP API listen address
func (c *Config) GetHTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}

// GetGRPCAddress returns the gRPC health listen address. Empty when disabled.
func (c *Config) GetGRPCAddress() string {
	if c.Server.GRPCPort == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.GRPCPort)
}

// PayrollAccount returns the account passed to the payroll approval procedure.
func (a ApprovalConfig) PayrollAccount(pop domain.Population) int32 {
	return a.PayrollAccounts[strings.ToLower(string(pop))]
}

// AssetAccount returns the account passed to the asset approval procedure.
func (a ApprovalConfig) AssetAccount(cat domain.AssetCategory) int32 {
	return a.AssetAccounts[strings.ToLower(string(cat))]
}
