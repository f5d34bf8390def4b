package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/meuprecocerto/precificacao/internal/pricing"
)

type HTTPConfig struct {
	Host               string
	Port               int
	CORSAllowedOrigins []string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

type PricingConfig struct {
	DefaultContractMonths int
	Fees                  pricing.FeeTable
}

type ListConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

type ImportConfig struct {
	MaxUploadMB int
}

type Config struct {
	Environment string
	LogLevel    string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Pricing     PricingConfig
	List        ListConfig
	Import      ImportConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 7090)
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("PRICING_DEFAULT_CONTRACT_MONTHS", pricing.DefaultContractMonths)
	v.SetDefault("PRICING_FEE_PIX", "0")
	v.SetDefault("PRICING_FEE_BOLETO", "1.99")
	v.SetDefault("PRICING_FEE_DEBITO", "1.99")
	v.SetDefault("PRICING_FEE_CREDITO", "4.99")
	v.SetDefault("PRICING_FEE_CREDITO_PARCELA", "1.49")
	v.SetDefault("LIST_DEFAULT_PAGE_SIZE", 10)
	v.SetDefault("LIST_MAX_PAGE_SIZE", 100)
	v.SetDefault("IMPORT_MAX_UPLOAD_MB", 10)

	_ = v.ReadInConfig()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	fees, err := feeTable(v)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		HTTP: HTTPConfig{
			Host:               v.GetString("HTTP_HOST"),
			Port:               v.GetInt("HTTP_PORT"),
			CORSAllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Pricing: PricingConfig{
			DefaultContractMonths: v.GetInt("PRICING_DEFAULT_CONTRACT_MONTHS"),
			Fees:                  fees,
		},
		List: ListConfig{
			DefaultPageSize: v.GetInt("LIST_DEFAULT_PAGE_SIZE"),
			MaxPageSize:     v.GetInt("LIST_MAX_PAGE_SIZE"),
		},
		Import: ImportConfig{
			MaxUploadMB: v.GetInt("IMPORT_MAX_UPLOAD_MB"),
		},
	}

	if len(cfg.HTTP.CORSAllowedOrigins) == 0 {
		cfg.HTTP.CORSAllowedOrigins = []string{"*"}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func feeTable(v *viper.Viper) (pricing.FeeTable, error) {
	keys := []string{
		"PRICING_FEE_PIX",
		"PRICING_FEE_BOLETO",
		"PRICING_FEE_DEBITO",
		"PRICING_FEE_CREDITO",
		"PRICING_FEE_CREDITO_PARCELA",
	}
	values := make([]decimal.Decimal, len(keys))
	for i, key := range keys {
		value, err := decimal.NewFromString(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return pricing.FeeTable{}, fmt.Errorf("%s must be a number: %w", key, err)
		}
		if value.IsNegative() {
			return pricing.FeeTable{}, fmt.Errorf("%s must not be negative", key)
		}
		values[i] = value
	}
	return pricing.FeeTable{
		Pix:                  values[0],
		Boleto:               values[1],
		Debito:               values[2],
		Credito:              values[3],
		CreditPerInstallment: values[4],
	}, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be a valid port")
	}
	if cfg.Pricing.DefaultContractMonths <= 0 {
		return fmt.Errorf("PRICING_DEFAULT_CONTRACT_MONTHS must be positive")
	}
	if cfg.List.DefaultPageSize <= 0 || cfg.List.MaxPageSize < cfg.List.DefaultPageSize {
		return fmt.Errorf("LIST_DEFAULT_PAGE_SIZE must be positive and not above LIST_MAX_PAGE_SIZE")
	}
	if cfg.Import.MaxUploadMB <= 0 {
		return fmt.Errorf("IMPORT_MAX_UPLOAD_MB must be positive")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
