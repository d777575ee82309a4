package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env string `mapstructure:"env"`
	} `mapstructure:"app"`

	Server struct {
		Port            int           `mapstructure:"port"`
		CorsOrigins     []string      `mapstructure:"cors_origins"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"server"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		Output string `mapstructure:"output"`
	} `mapstructure:"log"`

	Database struct {
		Driver     string `mapstructure:"driver"` // postgres | mongo
		Host       string `mapstructure:"host"`
		Port       uint   `mapstructure:"port"`
		Name       string `mapstructure:"name"`
		User       string `mapstructure:"user"`
		Password   string `mapstructure:"password"`
		SSLDisable bool   `mapstructure:"ssl_disable"`
		SecretID   string `mapstructure:"secret_id"`
	} `mapstructure:"database"`

	Mongo struct {
		URI      string        `mapstructure:"uri"`
		Database string        `mapstructure:"database"`
		Timeout  time.Duration `mapstructure:"timeout"`
	} `mapstructure:"mongo"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
	} `mapstructure:"jwt"`

	Redis struct {
		Enabled  bool          `mapstructure:"enabled"`
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		DB       int           `mapstructure:"db"`
		TTL      time.Duration `mapstructure:"ttl"`
	} `mapstructure:"redis"`

	Init struct {
		AdminPassword string `mapstructure:"admin_password"`
	} `mapstructure:"init"`

	Notification struct {
		WebhookURL string `mapstructure:"webhook_url"`
	} `mapstructure:"notification"`
}

var ErrJWTSecretAusente = errors.New("JWT_SECRET não definida")

// Load lê .env (se existir), configs/config.yaml (opcional) e variáveis de
// ambiente; JWT_SECRET, DATABASE_DRIVER, REDIS_ADDR, etc. sobrepõem o ficheiro.
func Load() (*Config, error) {
	// .env é opcional em produção
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvAliases(v)

	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] sem ficheiro de configuração, a usar defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// SERVER_CORS_ORIGINS chega como "a, b, c"
	cfg.Server.CorsOrigins = splitCSV(strings.Join(cfg.Server.CorsOrigins, ","))
	if len(cfg.Server.CorsOrigins) == 0 {
		cfg.Server.CorsOrigins = []string{"*"}
	}

	if cfg.JWT.Secret == "" {
		return nil, ErrJWTSecretAusente
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("server.port", 8001)
	v.SetDefault("server.cors_origins", "*")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "leiritrix")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_disable", false)
	v.SetDefault("database.secret_id", "")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "leiritrix")
	v.SetDefault("mongo.timeout", 20*time.Second)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 5*time.Minute)
	v.SetDefault("init.admin_password", "")
	v.SetDefault("notification.webhook_url", "")
}

// bindEnvAliases aceita também os nomes de variáveis usados nos deploys antigos.
func bindEnvAliases(v *viper.Viper) {
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = v.BindEnv("server.cors_origins", "SERVER_CORS_ORIGINS", "CORS_ORIGINS")
	_ = v.BindEnv("database.driver", "DATABASE_DRIVER", "DB_DRIVER")
	_ = v.BindEnv("database.host", "DATABASE_HOST", "DB_HOST")
	_ = v.BindEnv("database.port", "DATABASE_PORT", "DB_PORT")
	_ = v.BindEnv("database.name", "DATABASE_NAME", "DB_NAME")
	_ = v.BindEnv("database.user", "DATABASE_USER", "DB_USERNAME")
	_ = v.BindEnv("database.password", "DATABASE_PASSWORD", "DB_PASSWORD")
	_ = v.BindEnv("database.ssl_disable", "DATABASE_SSL_DISABLE", "DB_SSL_MODE_DISABLE")
	_ = v.BindEnv("database.secret_id", "DATABASE_SECRET_ID", "DB_SECRET_ID")
	_ = v.BindEnv("mongo.uri", "MONGO_URI", "MONGO_URL")
	_ = v.BindEnv("mongo.database", "MONGO_DATABASE", "DB_NAME")
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
