package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "RELAY"

type Config struct {
	Mode             string        `mapstructure:"mode" validate:"oneof=debug release test"`
	Addr             string        `mapstructure:"addr" validate:"required,listen_addr"`
	DefaultRoom      string        `mapstructure:"default_room" validate:"required"`
	ReadLimit        int64         `mapstructure:"read_limit" validate:"gt=0"`
	PingPeriod       time.Duration `mapstructure:"ping_period" validate:"gte=0"`
	WriteWait        time.Duration `mapstructure:"write_wait" validate:"gte=0"`
	QueueSize        int           `mapstructure:"queue_size" validate:"gt=0"`
	OverflowPolicy   string        `mapstructure:"overflow_policy" validate:"oneof=drop kick"`
	ChatRateLimit    int           `mapstructure:"chat_rate_limit" validate:"gte=0"`
	ChatRateInterval time.Duration `mapstructure:"chat_rate_interval" validate:"gte=0"`
	RoomIdleTTL      time.Duration `mapstructure:"room_idle_ttl" validate:"gte=0"`
	JanitorInterval  time.Duration `mapstructure:"janitor_interval" validate:"gt=0"`
	AllowedOrigins   []string      `mapstructure:"allowed_origins"`
	Secret           string        `mapstructure:"secret"`
	LogLevel         string        `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("addr", "127.0.0.1:9001")
	v.SetDefault("default_room", "general")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("write_wait", "10s")
	v.SetDefault("queue_size", 256)
	v.SetDefault("overflow_policy", "drop")
	v.SetDefault("chat_rate_limit", 10)
	v.SetDefault("chat_rate_interval", "1s")
	v.SetDefault("room_idle_ttl", "0s")
	v.SetDefault("janitor_interval", "1m")
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("secret", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("shutdown_timeout", "5s")
}

// Load resolves the configuration from, lowest first: defaults, the YAML
// file, RELAY_* environment variables (a .env file is read into the
// environment first), flags and finally the positional [addr] [room].
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	flags := pflag.NewFlagSet("roomrelay", pflag.ContinueOnError)
	flags.String("addr", "", "listen address (host:port)")
	flags.String("room", "", "default room every client starts in")
	flags.String("mode", "", "gin mode: debug, release or test")
	flags.String("log-level", "", "trace, debug, info, warn or error")
	configPath := flags.String("config", "", "YAML config file")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	fileName := *configPath
	if fileName == "" {
		env := os.Getenv("CONFIG_ENV")
		if env == "" {
			env = "dev"
		}
		fileName = fmt.Sprintf("config/config.%s.yaml", env)
	}
	v.SetConfigFile(fileName)
	if err := v.ReadInConfig(); err != nil {
		if *configPath != "" || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", fileName, err)
		}
		log.Debug().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	for key, flag := range map[string]string{
		"addr":         "addr",
		"default_room": "room",
		"mode":         "mode",
		"log_level":    "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	rest := flags.Args()
	if len(rest) > 0 {
		v.Set("addr", rest[0])
	}
	if len(rest) > 1 {
		v.Set("default_room", rest[1])
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("listen_addr", isListenAddr); err != nil {
		return nil, fmt.Errorf("failed to register validator: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Secret == "" {
		cfg.Secret = uuid.NewString()
		log.Warn().Str("module", "config").Msg("no secret configured, client tokens will not survive a restart")
	}

	log.Info().Str("module", "config").
		Str("mode", cfg.Mode).
		Str("addr", cfg.Addr).
		Str("room", cfg.DefaultRoom).
		Str("policy", cfg.OverflowPolicy).
		Msg("config resolved")
	return &cfg, nil
}

// isListenAddr accepts anything net.Listen would: "host:port", ":port" and
// bracketed IPv6 such as "[::1]:9001".
func isListenAddr(fl validator.FieldLevel) bool {
	_, port, err := net.SplitHostPort(fl.Field().String())
	if err != nil {
		return false
	}
	n, err := strconv.ParseUint(port, 10, 16)
	return err == nil && (n > 0 || port == "0")
}
