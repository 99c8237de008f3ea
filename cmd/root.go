package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/server"
	"github.com/spigell/resume-ranker/internal/validation"
)

const (
	app       = "resume-ranker"
	envPrefix = "RESUME_RANKER"

	defaultOutputFile = "ranked_resumes.csv"
)

type Config struct {
	Debug  bool              `mapstructure:"debug" json:"debug"`
	JSON   bool              `mapstructure:"json" json:"json"`
	Limits validation.Limits `mapstructure:"limits" json:"limits"`
	Output OutputConfig      `mapstructure:"output" json:"output"`
	Server server.Config     `mapstructure:"server" json:"server"`
}

type OutputConfig struct {
	// File is where rank writes the CSV. "-" means stdout.
	File string `mapstructure:"file" json:"file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-ranker ranks PDF resumes by their similarity to a job description",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-ranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults(v *viper.Viper) {
	defaults := server.DefaultConfig()

	v.SetDefault("debug", false)
	v.SetDefault("json", false)
	v.SetDefault("limits.max-files", validation.DefaultMaxFiles)
	v.SetDefault("limits.max-file-size", validation.DefaultMaxFileSize)
	v.SetDefault("output.file", defaultOutputFile)
	v.SetDefault("server.listen", defaults.Listen)
	v.SetDefault("server.read-timeout", defaults.ReadTimeout.String())
	v.SetDefault("server.write-timeout", defaults.WriteTimeout.String())
}

func initConfig() {
	// A missing .env is fine; a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(envKeyReplacer())
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		// We can't proceed if the explicit config file is missing or broken.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

// envKeyReplacer maps limits.max-files to LIMITS_MAX_FILES.
func envKeyReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_", "-", "_")
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.AllSettings())
}

// decodeConfig turns raw viper settings into Config. Strings from the
// environment are accepted for numbers, booleans and durations.
func decodeConfig(settings map[string]any) (*Config, error) {
	config := &Config{
		Output: OutputConfig{File: defaultOutputFile},
		Server: server.DefaultConfig(),
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           config,
	})
	if err != nil {
		return nil, fmt.Errorf("creating config decoder: %w", err)
	}

	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	config.Limits = config.Limits.WithDefaults()
	if config.Output.File == "" {
		config.Output.File = defaultOutputFile
	}
	defaults := server.DefaultConfig()
	if config.Server.Listen == "" {
		config.Server.Listen = defaults.Listen
	}
	if config.Server.ReadTimeout <= 0 {
		config.Server.ReadTimeout = defaults.ReadTimeout
	}
	if config.Server.WriteTimeout <= 0 {
		config.Server.WriteTimeout = defaults.WriteTimeout
	}

	return config, nil
}

// mustLoggerAndConfig builds the logger and the config or exits.
func mustLoggerAndConfig() (*zap.Logger, *Config) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	return zlog, config
}
