package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// ScheduleDisabled turns a scheduled job off.
const ScheduleDisabled = "-"

// Config is read in order: .env (if present), environment, command-line
// flags. Values set in the environment win over the .env file.
type Config struct {
	HTTPPort       string        `env:"HTTP_PORT" envDefault:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	JWTSecret      string        `env:"JWT_SECRET,required"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"orderflow"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// KafkaHost is a comma separated broker list. Empty keeps events in the
	// log instead of a broker.
	KafkaHost              string `env:"KAFKA_HOST"`
	KafkaOrderChangedTopic string `env:"KAFKA_ORDER_CHANGED_TOPIC" envDefault:"order.changed"`

	// Six-field cron expressions; ScheduleDisabled turns the weekly reset off.
	WeekResetSchedule   string `env:"WEEK_RESET_SCHEDULE" envDefault:"0 0 3 * * MON"`
	OutboxRelaySchedule string `env:"OUTBOX_RELAY_SCHEDULE" envDefault:"*/5 * * * * *"`
	OutboxBatchSize     int    `env:"OUTBOX_BATCH_SIZE" envDefault:"100"`

	OrderTransitionOwnerOnly bool `env:"ORDER_TRANSITION_OWNER_ONLY" envDefault:"false"`
	WeekResetOwnerOnly       bool `env:"WEEK_RESET_OWNER_ONLY" envDefault:"false"`
}

// LoadConfig reads envFile (missing is fine), then the environment, then args.
func LoadConfig(envFile string, args []string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	flags := pflag.NewFlagSet("orderflow", pflag.ContinueOnError)
	flags.StringVarP(&cfg.HTTPPort, "port", "p", cfg.HTTPPort, "HTTP port to listen on")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %q", c.HTTPPort))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("invalid request timeout: %s", c.RequestTimeout))
	}
	if c.OutboxBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("invalid outbox batch size: %d", c.OutboxBatchSize))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	return errors.Join(errs...)
}

// DSN is the libpq connection string shared by gorm and the migrations.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) WeeklyResetEnabled() bool {
	return c.WeekResetSchedule != ScheduleDisabled
}
