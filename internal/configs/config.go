package configs

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит всю конфигурацию приложения.
type Config struct {
	Port    string
	AppName string

	Properfy  ProperfyConfig
	Cache     CacheConfig
	Redis     RedisConfig
	Postgres  PostgresConfig
	RabbitMQ  RabbitMQConfig
	Formspark FormsparkConfig
	WhatsApp  WhatsAppConfig
	ViaCEP    ViaCEPConfig
	Admin     AdminConfig
	CORS      CORSConfig

	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

type ProperfyConfig struct {
	BaseURL  string
	Email    string
	Password string
	Timeout  time.Duration
	// PageSize - размер страницы по умолчанию для одиночного запроса
	PageSize int
	// SampleSize - сколько объектов запрашивать при fan-out и агрегации фильтров
	SampleSize     int
	TokenTTL       time.Duration
	MaxConcurrency int
}

type CacheConfig struct {
	ListingsTTL      time.Duration
	FilterOptionsTTL time.Duration
	PostalCodeTTL    time.Duration
}

type RedisConfig struct {
	Enabled   bool
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type PostgresConfig struct {
	DatabaseURL string
	MaxConns    int
}

type RabbitMQConfig struct {
	URL          string
	ExchangeName string
}

type FormsparkConfig struct {
	BaseURL string
	// id формы для каждого formType (contact, property, announce)
	FormIDs map[string]string
}

type WhatsAppConfig struct {
	Number string
}

type ViaCEPConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AdminConfig struct {
	JWTSecret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type StdoutLogConfig struct {
	Level  string
	IsJSON bool
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// LoadConfig загружает конфигурацию из переменных окружения.
// .env используется для локальной разработки, его отсутствие не ошибка.
func LoadConfig(envPath ...string) (*Config, error) {
	var err error
	if len(envPath) > 0 && envPath[0] != "" {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		AppName: getEnv("APP_NAME", "listing-service"),
	}

	cfg.Properfy = ProperfyConfig{
		BaseURL:        strings.TrimRight(os.Getenv("PROPERFY_API_URL"), "/"),
		Email:          os.Getenv("PROPERFY_EMAIL"),
		Password:       os.Getenv("PROPERFY_PASSWORD"),
		Timeout:        getEnvAsDuration("PROPERFY_TIMEOUT", 15*time.Second),
		PageSize:       getEnvAsInt("PROPERFY_PAGE_SIZE", 12),
		SampleSize:     getEnvAsInt("PROPERFY_SAMPLE_SIZE", 1000),
		TokenTTL:       getEnvAsDuration("PROPERFY_TOKEN_TTL", 50*time.Minute),
		MaxConcurrency: getEnvAsInt("PROPERFY_MAX_CONCURRENCY", 4),
	}

	var missing []string
	if cfg.Properfy.BaseURL == "" {
		missing = append(missing, "PROPERFY_API_URL")
	}
	if cfg.Properfy.Email == "" {
		missing = append(missing, "PROPERFY_EMAIL")
	}
	if cfg.Properfy.Password == "" {
		missing = append(missing, "PROPERFY_PASSWORD")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	if cfg.Properfy.SampleSize <= 0 || cfg.Properfy.SampleSize > 1000 {
		return nil, errors.New("PROPERFY_SAMPLE_SIZE must be between 1 and 1000")
	}

	cfg.Cache = CacheConfig{
		ListingsTTL:      getEnvAsDuration("CACHE_LISTINGS_TTL", time.Hour),
		FilterOptionsTTL: getEnvAsDuration("CACHE_FILTER_OPTIONS_TTL", 4*time.Hour),
		PostalCodeTTL:    getEnvAsDuration("CACHE_POSTAL_CODE_TTL", 24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Addr:      os.Getenv("REDIS_ADDR"),
		Password:  os.Getenv("REDIS_PASSWORD"),
		DB:        getEnvAsInt("REDIS_DB", 0),
		KeyPrefix: getEnv("REDIS_KEY_PREFIX", "listing:"),
	}
	cfg.Redis.Enabled = cfg.Redis.Addr != ""

	cfg.Postgres = PostgresConfig{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		MaxConns:    getEnvAsInt("DATABASE_MAX_CONNS", 5),
	}

	cfg.RabbitMQ = RabbitMQConfig{
		URL:          os.Getenv("RABBITMQ_URL"),
		ExchangeName: getEnv("RABBITMQ_LEADS_EXCHANGE", "leads_exchange"),
	}

	cfg.Formspark = FormsparkConfig{
		BaseURL: strings.TrimRight(getEnv("FORMSPARK_URL", "https://submit-form.com"), "/"),
		FormIDs: map[string]string{},
	}
	for formType, key := range map[string]string{
		"contact":  "FORMSPARK_CONTACT_FORM_ID",
		"property": "FORMSPARK_PROPERTY_FORM_ID",
		"announce": "FORMSPARK_ANNOUNCE_FORM_ID",
	} {
		if id := os.Getenv(key); id != "" {
			cfg.Formspark.FormIDs[formType] = id
		}
	}

	cfg.WhatsApp.Number = onlyDigits(os.Getenv("WHATSAPP_NUMBER"))

	cfg.ViaCEP = ViaCEPConfig{
		BaseURL: strings.TrimRight(getEnv("VIACEP_URL", "https://viacep.com.br/ws"), "/"),
		Timeout: getEnvAsDuration("VIACEP_TIMEOUT", 5*time.Second),
	}

	cfg.Admin.JWTSecret = os.Getenv("ADMIN_JWT_SECRET")

	cfg.CORS.AllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "*"))

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnv("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnv("STDOUT_LOG_LEVEL", "debug")
	cfg.StdoutLogger.IsJSON = getEnvAsBool("STDOUT_LOG_JSON", false)

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsDuration принимает как "90s"/"1h", так и голое число секунд
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists || valStr == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(valStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
