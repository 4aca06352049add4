package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"autistnet/internal/domain"
	"autistnet/internal/feed"
)

// Config is the complete autistnet configuration.
type Config struct {
	// Home holds state.json / state.enc. A leading "~/" is expanded.
	Home    string        `yaml:"home"`
	Timeout time.Duration `yaml:"timeout"`

	Log        LogConfig        `yaml:"log"`
	Storage    StorageConfig    `yaml:"storage"`
	Identity   IdentityConfig   `yaml:"identity"`
	Accounts   []AccountSeed    `yaml:"accounts"`
	Policy     PolicyConfig     `yaml:"policy"`
	Enhance    EnhanceConfig    `yaml:"enhance"`
	Media      MediaConfig      `yaml:"media"`
	Moderation ModerationConfig `yaml:"moderation"`
	Events     EventsConfig     `yaml:"events"`
	Ledger     LedgerConfig     `yaml:"ledger"`
	Graph      GraphConfig      `yaml:"graph"`
}

// LogConfig selects the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// StorageConfig chooses between the plain and the sealed snapshot file.
type StorageConfig struct {
	Sealed bool `yaml:"sealed"`
	// PassphraseEnv names the environment variable holding the passphrase.
	PassphraseEnv string `yaml:"passphrase_env"`
	// ScryptCost overrides the scrypt N parameter; zero keeps the default.
	ScryptCost int `yaml:"scrypt_cost,omitempty"`
}

// IdentityConfig seeds the two identities of a session.
type IdentityConfig struct {
	Member     AccountSeed `yaml:"member"`
	Government AccountSeed `yaml:"government"`
}

// AccountSeed describes an account created on first start.
type AccountSeed struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Role           string `yaml:"role"`
	Verified       bool   `yaml:"verified"`
	Coins          int64  `yaml:"coins"`
	Followers      int    `yaml:"followers"`
	Following      int    `yaml:"following"`
	RegistrationID string `yaml:"registration_id,omitempty"`
	Bio            string `yaml:"bio,omitempty"`
	CaregiverName  string `yaml:"caregiver_name,omitempty"`
	City           string `yaml:"city,omitempty"`
	State          string `yaml:"state,omitempty"`
	Country        string `yaml:"country,omitempty"`
}

// Account converts the seed into a domain account.
func (s AccountSeed) Account() (domain.Account, error) {
	role := domain.RoleMember
	if s.Role != "" {
		r, err := domain.ParseRole(s.Role)
		if err != nil {
			return domain.Account{}, fmt.Errorf("account %q: %w", s.ID, err)
		}
		role = r
	}
	return domain.Account{
		ID:             domain.UserID(s.ID),
		Name:           s.Name,
		Role:           role,
		Verified:       s.Verified,
		Coins:          s.Coins,
		Followers:      s.Followers,
		Following:      s.Following,
		RegistrationID: s.RegistrationID,
		Bio:            s.Bio,
		CaregiverName:  s.CaregiverName,
		City:           s.City,
		State:          s.State,
		Country:        s.Country,
	}, nil
}

// PolicyConfig overrides the reward amounts and the registration id rule.
type PolicyConfig struct {
	PostReward              int64 `yaml:"post_reward"`
	ComplaintReward         int64 `yaml:"complaint_reward"`
	StoryReward             int64 `yaml:"story_reward"`
	VideoReward             int64 `yaml:"video_reward"`
	MinRegistrationIDLength int   `yaml:"min_registration_id_length"`
}

// Policy converts the section into a feed.Policy.
func (p PolicyConfig) Policy() feed.Policy {
	return feed.Policy{
		PostReward:              p.PostReward,
		ComplaintReward:         p.ComplaintReward,
		StoryReward:             p.StoryReward,
		VideoReward:             p.VideoReward,
		MinRegistrationIDLength: p.MinRegistrationIDLength,
	}
}

// EnhanceConfig configures the Gemini text enhancer.
type EnhanceConfig struct {
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
}

// MediaConfig bounds loaded images.
type MediaConfig struct {
	MaxBytes int64 `yaml:"max_bytes"`
}

// ModerationConfig lists where block/report/verification notices go.
type ModerationConfig struct {
	// RelayURL is the moderation relay base URL; empty disables it.
	RelayURL string         `yaml:"relay_url"`
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig enables the Telegram notifier when ChatID is non-zero.
type TelegramConfig struct {
	TokenEnv string `yaml:"token_env"`
	ChatID   int64  `yaml:"chat_id"`
}

// EventsConfig enables NATS publishing when NATSURL is set.
type EventsConfig struct {
	NATSURL       string `yaml:"nats_url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

// LedgerConfig enables the Postgres ledger mirror when the DSN is set.
type LedgerConfig struct {
	PostgresDSNEnv string `yaml:"postgres_dsn_env"`
}

// GraphConfig enables the Neo4j follow mirror when URI is set.
type GraphConfig struct {
	URI         string `yaml:"uri"`
	Username    string `yaml:"username"`
	PasswordEnv string `yaml:"password_env"`
	Database    string `yaml:"database"`
}

// DefaultConfig returns a Config with the stock session: Gabriel Silva as
// the member and the Sao Paulo health secretariat as the government identity.
func DefaultConfig() *Config {
	home := ".autistnet"
	if dir, err := os.UserHomeDir(); err == nil {
		home = filepath.Join(dir, ".autistnet")
	}
	p := feed.DefaultPolicy()
	return &Config{
		Home:    home,
		Timeout: 15 * time.Second,
		Log:     LogConfig{Level: "info"},
		Storage: StorageConfig{PassphraseEnv: "AUTISTNET_PASSPHRASE"},
		Identity: IdentityConfig{
			Member: AccountSeed{
				ID:            "u1",
				Name:          "Gabriel Silva",
				Role:          "member",
				Coins:         1250,
				Followers:     450,
				Following:     120,
				Bio:           "Amante de trens, dinossauros e programação. O mundo é azul! 💙",
				CaregiverName: "Maria Silva",
				City:          "São Paulo",
				State:         "SP",
				Country:       "Brasil",
			},
			Government: AccountSeed{
				ID:             "gov1",
				Name:           "Secretaria de Saúde - SP",
				Role:           "government",
				Verified:       true,
				Followers:      10000,
				RegistrationID: "00.000.000/0001-00",
				Bio:            "Perfil Oficial para atendimento ao cidadão.",
			},
		},
		Accounts: []AccountSeed{
			{ID: "u2", Name: "Carlos Santos"},
			{ID: "u3", Name: "Marina Oliveira"},
			{ID: "u4", Name: "Roberto Almeida"},
		},
		Policy: PolicyConfig{
			PostReward:              p.PostReward,
			ComplaintReward:         p.ComplaintReward,
			StoryReward:             p.StoryReward,
			VideoReward:             p.VideoReward,
			MinRegistrationIDLength: p.MinRegistrationIDLength,
		},
		Enhance: EnhanceConfig{
			APIKeyEnv: "GEMINI_API_KEY",
			Model:     "gemini-2.5-flash",
		},
		Media:      MediaConfig{MaxBytes: 5 << 20},
		Moderation: ModerationConfig{Telegram: TelegramConfig{TokenEnv: "AUTISTNET_TELEGRAM_TOKEN"}},
		Events:     EventsConfig{SubjectPrefix: "autistnet"},
		Ledger:     LedgerConfig{PostgresDSNEnv: "AUTISTNET_POSTGRES_DSN"},
		Graph: GraphConfig{
			Username:    "neo4j",
			PasswordEnv: "AUTISTNET_NEO4J_PASSWORD",
			Database:    "neo4j",
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Home) == "" {
		return fmt.Errorf("home is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	member, err := c.Identity.Member.Account()
	if err != nil {
		return fmt.Errorf("identity.member: %w", err)
	}
	gov, err := c.Identity.Government.Account()
	if err != nil {
		return fmt.Errorf("identity.government: %w", err)
	}
	switch {
	case member.ID == "" || gov.ID == "":
		return fmt.Errorf("identity.member.id and identity.government.id are required")
	case member.ID == gov.ID:
		return fmt.Errorf("identity.member and identity.government must differ")
	case gov.Role != domain.RoleGovernment:
		return fmt.Errorf("identity.government.role must be government, got %s", gov.Role)
	case member.Role == domain.RoleGovernment:
		return fmt.Errorf("identity.member cannot have the government role")
	}
	for i, seed := range c.Accounts {
		if _, err := seed.Account(); err != nil {
			return fmt.Errorf("accounts[%d]: %w", i, err)
		}
	}

	p := c.Policy
	if p.PostReward < 0 || p.ComplaintReward < 0 || p.StoryReward < 0 || p.VideoReward < 0 {
		return fmt.Errorf("policy rewards cannot be negative")
	}
	if p.MinRegistrationIDLength < 1 {
		return fmt.Errorf("policy.min_registration_id_length must be at least 1")
	}
	if c.Media.MaxBytes <= 0 {
		return fmt.Errorf("media.max_bytes must be positive")
	}
	if c.Storage.Sealed && c.Storage.PassphraseEnv == "" {
		return fmt.Errorf("storage.passphrase_env is required when storage.sealed is set")
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log.level %q is not one of debug, info, warn, error", name)
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.apply(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply decodes the YAML file at path over c. Keys absent from the file keep
// their current values; unknown keys are rejected.
func (c *Config) apply(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// SaveToFile writes the configuration as YAML.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Secret returns the value of the environment variable named by env, or ""
// when env is empty.
func Secret(env string) string {
	if env == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(env))
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(dir, strings.TrimPrefix(path, "~"))
}
