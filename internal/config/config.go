package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Host            string
	Port            string
	ShutdownTimeout time.Duration
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
	Key      string
	TTL      time.Duration
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type Auth struct {
	JWTSecret string
}

type WS struct {
	AllowedOrigins []string
	SendBuffer     int
}

type Log struct {
	Level string
}

type Config struct {
	HTTP     HTTPServer
	Redis    RedisCache
	Postgres Postgres
	Auth     Auth
	WS       WS
	Log      Log
}

const logtag = "[config]"

// Load reads env from path, or from ./.env when path is empty.
// Process environment always wins over file values.
func Load(path string) *Config {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, path)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	v := viper.New()
	v.AutomaticEnv()

	cfg := &Config{
		HTTP:     *newHTTP(v),
		Redis:    *newRedis(v),
		Postgres: *newPostgres(v),
		Auth:     *newAuth(v),
		WS:       *newWS(v),
		Log:      *newLog(v),
	}

	log.Printf("%s backend config : http=%+v redis=%s:%s postgres=%s:%s/%s ws=%+v log=%s\n", logtag,
		cfg.HTTP, cfg.Redis.Host, cfg.Redis.Port, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName, cfg.WS, cfg.Log.Level)
	return cfg
}

func newHTTP(v *viper.Viper) *HTTPServer {
	return &HTTPServer{
		Port:            getenv(v, "HTTP_PORT", "8080"),
		Host:            getenv(v, "HTTP_HOST", "localhost"),
		ShutdownTimeout: getduration(v, "HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func newRedis(v *viper.Viper) *RedisCache {
	return &RedisCache{
		Port:     getenv(v, "REDIS_PORT", "6379"),
		Host:     getenv(v, "REDIS_HOST", "redis"),
		Password: getsecret(v, "REDIS_PASSWORD", "shared"),
		Key:      getenv(v, "REDIS_KEY", "quiz_catalog"),
		TTL:      getduration(v, "REDIS_TTL", 5*time.Minute),
	}
}

func newPostgres(v *viper.Viper) *Postgres {
	return &Postgres{
		Host:     getenv(v, "DB_HOST", "localhost"),
		Port:     getenv(v, "DB_PORT", "5432"),
		User:     getenv(v, "DB_USER", "admin"),
		Password: getsecret(v, "DB_PASSWORD", "shared"),
		DBName:   getenv(v, "DB_NAME", "quiz"),
		SSLMode:  getenv(v, "DB_SSLMODE", "disable"),
	}
}

func newAuth(v *viper.Viper) *Auth {
	return &Auth{
		JWTSecret: getsecret(v, "JWT_SECRET", ""),
	}
}

func newWS(v *viper.Viper) *WS {
	origins := make([]string, 0)
	for _, o := range strings.Split(getenv(v, "WS_ALLOWED_ORIGINS", "*"), ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return &WS{
		AllowedOrigins: origins,
		SendBuffer:     getint(v, "WS_SEND_BUFFER", 64),
	}
}

func newLog(v *viper.Viper) *Log {
	return &Log{
		Level: getenv(v, "LOG_LEVEL", "info"),
	}
}

func getenv(v *viper.Viper, key, defaultValue string) string {
	val := v.GetString(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

func getsecret(v *viper.Viper, key, defaultValue string) string {
	val := v.GetString(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value\n", logtag, key)
		return defaultValue
	}
	fmt.Printf("%s %s is set\n", logtag, key)
	return val
}

func getduration(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	if !v.IsSet(key) {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	d := v.GetDuration(key)
	if d <= 0 {
		fmt.Printf("%s %s invalid. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	return d
}

func getint(v *viper.Viper, key string, defaultValue int) int {
	if !v.IsSet(key) {
		fmt.Printf("%s %s undefined. Using default value %d\n", logtag, key, defaultValue)
		return defaultValue
	}
	n := v.GetInt(key)
	if n <= 0 {
		fmt.Printf("%s %s invalid. Using default value %d\n", logtag, key, defaultValue)
		return defaultValue
	}
	return n
}
