package cmd

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/orienta/internal/diversity"
	"github.com/spigell/orienta/internal/generation"
	"github.com/spigell/orienta/internal/guard"
	"github.com/spigell/orienta/internal/profile"
	"github.com/spigell/orienta/internal/prompt"
	"github.com/spigell/orienta/internal/resolver"
	"github.com/spigell/orienta/internal/results"
	"github.com/spigell/orienta/internal/session"
	"github.com/spigell/orienta/internal/store"
)

const (
	app       = "orienta"
	envPrefix = "ORIENTA"
)

type Config struct {
	AI        *AIConfig        `mapstructure:"ai"`
	Engine    EngineConfig     `mapstructure:"engine"`
	Schedule  prompt.Schedule  `mapstructure:"schedule"`
	Limits    prompt.Limits    `mapstructure:"limits"`
	Diversity diversity.Policy `mapstructure:"diversity"`
	Results   results.Config   `mapstructure:"results"`
	Store     store.Config     `mapstructure:"store"`
	Server    ServerConfig     `mapstructure:"server"`
	Profile   ProfileConfig    `mapstructure:"profile"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string        `mapstructure:"api-key"`
	APIKeyFile   string        `mapstructure:"api-key-file"`
	Model        string        `mapstructure:"model"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxLogLength int           `mapstructure:"max-log-length"`
}

type EngineConfig struct {
	Resolver   resolver.Thresholds `mapstructure:"resolver"`
	Guard      guard.Config        `mapstructure:"guard"`
	Generation generation.Config   `mapstructure:"generation"`
	Session    session.Config      `mapstructure:",squash"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read-timeout"`
	WriteTimeout    time.Duration `mapstructure:"write-timeout"`
	// RequestTimeout bounds an API handler. Unset, it covers the slowest
	// generation or results path for the configured ai timeout.
	RequestTimeout  time.Duration `mapstructure:"request-timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed-origins"`
	RateLimitPerMin int           `mapstructure:"rate-limit-per-min"`
}

type ProfileConfig struct {
	Static profile.Static `mapstructure:"static"`
	HTTP   *struct {
		BaseURL   string `mapstructure:"base-url"`
		Token     string `mapstructure:"token"`
		TokenFile string `mapstructure:"token-file"`
		UserAgent string `mapstructure:"user-agent"`
	} `mapstructure:"http"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "orienta is an adaptive vocational interview that ends with three career recommendations",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key", "GEMINI_API_KEY"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY environment variable: %v", err)
	}

	viper.SetDefault("ai.enabled", true)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("results.max-retries", 2)
	viper.SetDefault("store.driver", store.DriverMemory)
	viper.SetDefault("store.sqlite.path", app+".db")
	viper.SetDefault("store.redis.addr", "localhost:6379")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.read-timeout", 15*time.Second)
	viper.SetDefault("server.write-timeout", 120*time.Second)
	viper.SetDefault("server.shutdown-timeout", 10*time.Second)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is orienta.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if versionCmd.CalledAs() != "" {
		return
	}

	// A missing .env file is fine: the environment may already be populated.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}
	if config == nil {
		config = &Config{}
	}

	return config, nil
}
