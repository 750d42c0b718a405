package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	Mongo   MongoConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string // lista separada por comas; "*" permite cualquier origen
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Drivers de almacenamiento soportados.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// StorageConfig selecciona el backend de persistencia.
type StorageConfig struct {
	Driver string // mongo | memory
}

// MongoConfig configuración de MongoDB.
type MongoConfig struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
	QueryTimeout   time.Duration // límite por operación; 0 = sin límite
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, PORT, MONGO_URI, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "employee-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "PORT", 5000),
			CORSOrigins: getString(v, "CORS_ALLOW_ORIGINS", "*"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getString(v, "STORAGE_DRIVER", DriverMongo)),
		},
		Mongo: MongoConfig{
			URI:            getString(v, "MONGO_URI", "mongodb://localhost:27017"),
			Database:       getString(v, "MONGO_DATABASE", "employee_api"),
			Collection:     getString(v, "MONGO_COLLECTION", "employees"),
			ConnectTimeout: time.Duration(getInt(v, "MONGO_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second,
			QueryTimeout:   time.Duration(getInt(v, "MONGO_QUERY_TIMEOUT_SECONDS", 10)) * time.Second,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("PORT inválido: %d", c.HTTP.Port)
	}
	switch c.Storage.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI es requerido con STORAGE_DRIVER=%s", DriverMongo)
		}
		if c.Mongo.Database == "" || c.Mongo.Collection == "" {
			return fmt.Errorf("MONGO_DATABASE y MONGO_COLLECTION son requeridos")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER desconocido: %q", c.Storage.Driver)
	}
	return nil
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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
