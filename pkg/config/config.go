package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados (STORAGE_DRIVER).
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Storage StorageConfig
	DB      DBConfig
	MySQL   MySQLConfig
	Redis   RedisConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Seed    SeedConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// StorageConfig selecciona el backend donde se guardan las colecciones.
type StorageConfig struct {
	Driver string // memory, redis, postgres, mysql
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// MySQLConfig configuración del backend MySQL (DSN estilo go-sql-driver).
type MySQLConfig struct {
	DSN string // user:pass@tcp(host:3306)/gestion?parseTime=true
}

// RedisConfig configuración del backend Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // prefijo de las claves, ej. "gestion:"
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SeedConfig valores iniciales instalados la primera vez que arranca un almacenamiento vacío.
type SeedConfig struct {
	AdminCode      string
	EmployeeCode   string
	RecoveryAnswer string
	DeletePassword string // vacío = operaciones destructivas sin contraseña
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORAGE_DRIVER, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración desde una instancia de Viper ya poblada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "gestion-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getString(v, "STORAGE_DRIVER", DriverMemory)),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "gestion"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		MySQL: MySQLConfig{
			DSN: getString(v, "MYSQL_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			Prefix:   getString(v, "REDIS_PREFIX", "gestion:"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "gestion-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Seed: SeedConfig{
			AdminCode:      getString(v, "SEED_ADMIN_CODE", "1234"),
			EmployeeCode:   getString(v, "SEED_EMPLOYEE_CODE", "5678"),
			RecoveryAnswer: getString(v, "SEED_RECOVERY_ANSWER", "sallen"),
			DeletePassword: getString(v, "SEED_DELETE_PASSWORD", ""),
		},
	}

	switch cfg.Storage.Driver {
	case DriverMemory, DriverRedis, DriverPostgres, DriverMySQL:
	default:
		return nil, fmt.Errorf("config: STORAGE_DRIVER desconocido %q", cfg.Storage.Driver)
	}
	if cfg.Storage.Driver == DriverMySQL && cfg.MySQL.DSN == "" {
		return nil, fmt.Errorf("config: MYSQL_DSN requerido con STORAGE_DRIVER=mysql")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
