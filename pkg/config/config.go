package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config configuración completa de la aplicación, cargada desde archivo
// y variables de entorno.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	HTTP   HTTPConfig   `mapstructure:"http"`
	DB     DBConfig     `mapstructure:"db"`
	Redis  RedisConfig  `mapstructure:"redis"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Notify NotifyConfig `mapstructure:"notify"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

type HTTPConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
	MaxConns int32  `mapstructure:"max_conns"`
	MinConns int32  `mapstructure:"min_conns"`
	// URL si está presente (o via DATABASE_URL) tiene prioridad sobre los
	// campos individuales.
	URL string `mapstructure:"url"`
}

type RedisConfig struct {
	// Addr vacío deshabilita el cache de contadores.
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Issuer     string `mapstructure:"issuer"`
	ExpMinutes int    `mapstructure:"exp_minutes"`
}

type NotifyConfig struct {
	CheckInterval   time.Duration `mapstructure:"check_interval"`
	RetentionDays   int           `mapstructure:"retention_days"`
	WebhookURL      string        `mapstructure:"webhook_url"`
	ReverseOnReject bool          `mapstructure:"reverse_on_reject"`
}

// DSN arma la cadena de conexión a Postgres.
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// Addr dirección de escucha del servidor HTTP.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee config.yaml (si existe) y variables de entorno con prefijo
// ESTOQUE_. Las variables de entorno tienen prioridad.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "estoque-api")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "15s")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "estoque")
	v.SetDefault("db.ssl_mode", "disable")
	v.SetDefault("db.max_conns", 10)
	v.SetDefault("db.min_conns", 2)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.issuer", "estoque-api")
	v.SetDefault("jwt.exp_minutes", 60)

	v.SetDefault("notify.check_interval", "5m")
	v.SetDefault("notify.retention_days", 30)
	v.SetDefault("notify.webhook_url", "")
	v.SetDefault("notify.reverse_on_reject", false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("ESTOQUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// El archivo es opcional: solo falla si existe y está malformado
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("leyendo config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parseando config: %w", err)
	}

	// DATABASE_URL es la convención de despliegue más común
	if url := v.GetString("database_url"); url != "" {
		cfg.DB.URL = url
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: jwt.secret es obligatorio (ESTOQUE_JWT_SECRET)")
	}

	return &cfg, nil
}
