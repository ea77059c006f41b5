package config

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	APP struct {
		Name     string
		Host     string
		Port     string
		Env      string
		LogLevel string
		LogJSON  bool
		LogFile  string
	}
	DB struct {
		User               string
		Password           string
		Name               string
		Host               string
		Port               string
		SSLMode            string
		MaxOpenConns       int
		MaxIdleConns       int
		ConnMaxLifetimeMin int
		AutoMigrate        bool
		LogLevel           string
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}
	Policy struct {
		MinAge          int
		MaxAge          int
		PhoneRegion     string
		HashTimeCost    uint32
		HashMemoryKiB   uint32
		HashParallelism uint8
	}

	Config struct {
		App    APP
		DB     DB
		MQ     MQ
		Policy Policy
	}
)

// bindings maps config keys to environment variables and defaults.
var bindings = []struct {
	key, env string
	def      any
}{
	{"app.name", "SERVICE_NAME", "userregistry"},
	{"app.host", "SERVICE_HOST", "0.0.0.0"},
	{"app.port", "SERVICE_PORT", "8080"},
	{"app.env", "SERVICE_ENV", "debug"},
	{"app.log_level", "LOG_LEVEL", "info"},
	{"app.log_json", "LOG_JSON", true},
	{"app.log_file", "LOG_FILE", ""},

	{"db.user", "POSTGRES_USER", ""},
	{"db.password", "POSTGRES_PASSWORD", ""},
	{"db.name", "POSTGRES_DB", ""},
	{"db.host", "POSTGRES_HOST", ""},
	{"db.port", "POSTGRES_PORT", "5432"},
	{"db.sslmode", "POSTGRES_SSLMODE", "disable"},
	{"db.max_open_conns", "POSTGRES_MAX_OPEN_CONNS", 20},
	{"db.max_idle_conns", "POSTGRES_MAX_IDLE_CONNS", 5},
	{"db.conn_max_lifetime_min", "POSTGRES_CONN_MAX_LIFETIME_MIN", 30},
	{"db.auto_migrate", "POSTGRES_AUTO_MIGRATE", true},
	{"db.log_level", "POSTGRES_LOG_LEVEL", "warn"},

	{"mq.user", "RABBITMQ_USER", ""},
	{"mq.password", "RABBITMQ_PASSWORD", ""},
	{"mq.vhost", "RABBITMQ_VHOST", "/"},
	{"mq.host", "RABBITMQ_HOST", ""},
	{"mq.amqp_port", "RABBITMQ_AMQP_PORT", "5672"},
	{"mq.exchange", "RABBITMQ_EXCHANGE", "users"},
	{"mq.exchange_type", "RABBITMQ_EXCHANGE_TYPE", "topic"},
	{"mq.queue_name", "RABBITMQ_QUEUE_NAME", "users.audit"},

	{"policy.min_age", "POLICY_MIN_AGE", 18},
	{"policy.max_age", "POLICY_MAX_AGE", 70},
	{"policy.phone_region", "POLICY_PHONE_REGION", "BR"},
	{"policy.hash_time_cost", "POLICY_HASH_TIME_COST", 3},
	{"policy.hash_memory_kib", "POLICY_HASH_MEMORY_KIB", 64 * 1024},
	{"policy.hash_parallelism", "POLICY_HASH_PARALLELISM", 4},
}

// Load reads an optional .env file and then the environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// a missing .env is fine; real deployments set the environment
		_ = godotenv.Load(f)
	}

	v := viper.New()
	for _, b := range bindings {
		v.SetDefault(b.key, b.def)
		if err := v.BindEnv(b.key, b.env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", b.env, err)
		}
	}

	parallelism := v.GetUint("policy.hash_parallelism")
	if parallelism > math.MaxUint8 {
		return Config{}, fmt.Errorf("POLICY_HASH_PARALLELISM must be at most %d, got %d", math.MaxUint8, parallelism)
	}

	return Config{
		App: APP{
			Name:     v.GetString("app.name"),
			Host:     v.GetString("app.host"),
			Port:     v.GetString("app.port"),
			Env:      v.GetString("app.env"),
			LogLevel: v.GetString("app.log_level"),
			LogJSON:  v.GetBool("app.log_json"),
			LogFile:  v.GetString("app.log_file"),
		},
		DB: DB{
			User:               v.GetString("db.user"),
			Password:           v.GetString("db.password"),
			Name:               v.GetString("db.name"),
			Host:               v.GetString("db.host"),
			Port:               v.GetString("db.port"),
			SSLMode:            v.GetString("db.sslmode"),
			MaxOpenConns:       v.GetInt("db.max_open_conns"),
			MaxIdleConns:       v.GetInt("db.max_idle_conns"),
			ConnMaxLifetimeMin: v.GetInt("db.conn_max_lifetime_min"),
			AutoMigrate:        v.GetBool("db.auto_migrate"),
			LogLevel:           v.GetString("db.log_level"),
		},
		MQ: MQ{
			User:         v.GetString("mq.user"),
			Password:     v.GetString("mq.password"),
			Vhost:        v.GetString("mq.vhost"),
			Host:         v.GetString("mq.host"),
			AmqpPort:     v.GetString("mq.amqp_port"),
			Exchange:     v.GetString("mq.exchange"),
			ExchangeType: v.GetString("mq.exchange_type"),
			QueueName:    v.GetString("mq.queue_name"),
		},
		Policy: Policy{
			MinAge:          v.GetInt("policy.min_age"),
			MaxAge:          v.GetInt("policy.max_age"),
			PhoneRegion:     strings.ToUpper(v.GetString("policy.phone_region")),
			HashTimeCost:    v.GetUint32("policy.hash_time_cost"),
			HashMemoryKiB:   v.GetUint32("policy.hash_memory_kib"),
			HashParallelism: uint8(parallelism),
		},
	}, nil
}

// UseMemoryStore reports whether no database is configured.
func (c Config) UseMemoryStore() bool {
	return c.App.Env == "test" || c.DB.Host == ""
}

func (c Config) MQEnabled() bool { return c.MQ.Host != "" }

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	dsn := fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	)
	if c.DB.SSLMode != "" {
		dsn += "?sslmode=" + url.QueryEscape(c.DB.SSLMode)
	}
	return dsn, nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
