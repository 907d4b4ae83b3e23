// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/viper"

	"github.com/rovshanmuradov/solana-lock/internal/lock"
	"github.com/rovshanmuradov/solana-lock/internal/utils/logger"
)

// EnvPrefix is the prefix of environment overrides, e.g. SOLANA_LOCK_RPC_URL.
const EnvPrefix = "SOLANA_LOCK"

type Config struct {
	RPCURL     string `mapstructure:"rpc_url"`
	Commitment string `mapstructure:"commitment"`

	// Keypair file (solana-keygen JSON) or a named entry of a YAML wallets file.
	Wallet      string `mapstructure:"wallet"`
	WalletsFile string `mapstructure:"wallets_file"`
	WalletName  string `mapstructure:"wallet_name"`

	ComputeUnitLimit uint32        `mapstructure:"compute_unit_limit"`
	ComputeUnitPrice uint64        `mapstructure:"compute_unit_price"`
	ConfirmTimeout   time.Duration `mapstructure:"confirm_timeout"`
	SkipPreflight    bool          `mapstructure:"skip_preflight"`

	Debug bool      `mapstructure:"debug"`
	Log   LogConfig `mapstructure:"log"`

	Programs ProgramsConfig `mapstructure:"programs"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

// ProgramsConfig holds base58 program ids.
type ProgramsConfig struct {
	Lock            string `mapstructure:"lock"`
	CPSwap          string `mapstructure:"cp_swap"`
	CLMM            string `mapstructure:"clmm"`
	Token           string `mapstructure:"token"`
	Token2022       string `mapstructure:"token_2022"`
	AssociatedToken string `mapstructure:"associated_token"`
	Metadata        string `mapstructure:"metadata"`
	Memo            string `mapstructure:"memo"`
	System          string `mapstructure:"system"`
	Rent            string `mapstructure:"rent"`
}

// Mainnet defaults
const (
	DefaultRPCURL         = "https://api.mainnet-beta.solana.com"
	DefaultCommitment     = "confirmed"
	DefaultConfirmTimeout = 60 * time.Second

	DefaultLockProgram     = "LockrWmn6K5twhz3y9w1dQERbmgSaRkfnTeTKbpofwE"
	DefaultCPSwapProgram   = "CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C"
	DefaultCLMMProgram     = "CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK"
	DefaultTokenProgram    = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	DefaultToken2022       = "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"
	DefaultATAProgram      = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"
	DefaultMetadataProgram = "metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s"
	DefaultMemoProgram     = "MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr"
	DefaultSystemProgram   = "11111111111111111111111111111111"
	DefaultRentSysvar      = "SysvarRent111111111111111111111111111111111"
)

func setDefaults(v *viper.Viper) {
	defaults := map[string]interface{}{
		"rpc_url":            DefaultRPCURL,
		"commitment":         DefaultCommitment,
		"wallet":             "",
		"wallets_file":       "",
		"wallet_name":        "",
		"compute_unit_limit": 0,
		"compute_unit_price": 0,
		"confirm_timeout":    DefaultConfirmTimeout,
		"skip_preflight":     false,
		"debug":              false,

		"log.file":        "solana-lock.log",
		"log.max_size":    100,
		"log.max_age":     7,
		"log.max_backups": 3,
		"log.compress":    true,

		"programs.lock":             DefaultLockProgram,
		"programs.cp_swap":          DefaultCPSwapProgram,
		"programs.clmm":             DefaultCLMMProgram,
		"programs.token":            DefaultTokenProgram,
		"programs.token_2022":       DefaultToken2022,
		"programs.associated_token": DefaultATAProgram,
		"programs.metadata":         DefaultMetadataProgram,
		"programs.memo":             DefaultMemoProgram,
		"programs.system":           DefaultSystemProgram,
		"programs.rent":             DefaultRentSysvar,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// LoadConfig reads configuration from path (optional) and SOLANA_LOCK_*
// environment variables, then validates it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config error: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate checks required fields.
func (c *Config) validate() error {
	parsed, err := url.Parse(c.RPCURL)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("invalid rpc_url %q", c.RPCURL)
	}
	if !strings.HasPrefix(parsed.Scheme, "http") {
		return errors.New("rpc_url must use http or https")
	}

	switch rpc.CommitmentType(c.Commitment) {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
	default:
		return fmt.Errorf("invalid commitment %q", c.Commitment)
	}

	if c.WalletsFile != "" && c.WalletName == "" {
		return errors.New("wallet_name is required with wallets_file")
	}
	if c.ConfirmTimeout <= 0 {
		return errors.New("invalid confirm_timeout")
	}

	if _, err := c.LockPrograms(); err != nil {
		return err
	}
	return nil
}

// CommitmentType returns the configured commitment level.
func (c *Config) CommitmentType() rpc.CommitmentType {
	return rpc.CommitmentType(c.Commitment)
}

// HasWallet reports whether any signing credential is configured.
func (c *Config) HasWallet() bool {
	return c.Wallet != "" || c.WalletsFile != ""
}

// LockPrograms parses the configured program ids.
func (c *Config) LockPrograms() (lock.Programs, error) {
	var p lock.Programs
	for _, f := range []struct {
		key   string
		value string
		dst   *solana.PublicKey
	}{
		{"programs.lock", c.Programs.Lock, &p.Lock},
		{"programs.cp_swap", c.Programs.CPSwap, &p.CPSwap},
		{"programs.clmm", c.Programs.CLMM, &p.CLMM},
		{"programs.token", c.Programs.Token, &p.Token},
		{"programs.token_2022", c.Programs.Token2022, &p.Token2022},
		{"programs.associated_token", c.Programs.AssociatedToken, &p.AssociatedToken},
		{"programs.metadata", c.Programs.Metadata, &p.Metadata},
		{"programs.memo", c.Programs.Memo, &p.Memo},
		{"programs.system", c.Programs.System, &p.System},
		{"programs.rent", c.Programs.Rent, &p.Rent},
	} {
		key, err := solana.PublicKeyFromBase58(f.value)
		if err != nil {
			return lock.Programs{}, fmt.Errorf("invalid %s %q: %w", f.key, f.value, err)
		}
		*f.dst = key
	}
	if err := p.Validate(); err != nil {
		return lock.Programs{}, err
	}
	return p, nil
}

// LoggerConfig maps the log section onto the logger package.
func (c *Config) LoggerConfig() *logger.Config {
	return &logger.Config{
		LogFile:     c.Log.File,
		MaxSize:     c.Log.MaxSize,
		MaxAge:      c.Log.MaxAge,
		MaxBackups:  c.Log.MaxBackups,
		Compress:    c.Log.Compress,
		Development: c.Debug,
	}
}
