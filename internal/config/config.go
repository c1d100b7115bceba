package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment mirrors APP_ENV and only drives log formatting.
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// ParseEnvironment falls back to Development for unknown values.
func ParseEnvironment(v string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(v))) {
	case Production:
		return Production
	case Testing:
		return Testing
	default:
		return Development
	}
}

type Config struct {
	Env      Environment
	LogLevel string

	DBPath         string
	CatalogPath    string
	OutputDir      string
	SuggestionsDir string
	ImagesDir      string
	LogoPath       string

	SuggestionStore string
	RedisURL        string
	RedisPrefix     string

	PriceLists       []string
	DefaultPriceList string
	MarkupFactor     float64

	ListTitle     string
	CompanyFooter string
	CompanySite   string

	MailFromName    string
	MailFromAddress string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Env:      ParseEnvironment(getEnv("APP_ENV", "development")),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBPath:         getEnv("DB_PATH", filepath.Join(cwd, "data", "carta.db")),
		CatalogPath:    getEnv("CATALOG_PATH", filepath.Join(cwd, "vinhos1.xlsx")),
		OutputDir:      getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		SuggestionsDir: getEnv("SUGGESTIONS_DIR", filepath.Join(cwd, "sugestoes")),
		ImagesDir:      getEnv("IMAGES_DIR", filepath.Join(cwd, "imagens")),
		LogoPath:       getEnv("LOGO_PATH", filepath.Join(cwd, "CARTA", "logo.png")),

		SuggestionStore: strings.ToLower(getEnv("SUGGESTION_STORE", "sqlite")),
		RedisURL:        getEnv("REDIS_URL", ""),
		RedisPrefix:     getEnv("REDIS_PREFIX", "carta:suggestion:"),

		PriceLists:       getEnvList("PRICE_LISTS", []string{"preco1", "preco2", "preco15", "preco38", "preco39", "preco55", "preco63"}),
		DefaultPriceList: getEnv("DEFAULT_PRICE_LIST", "preco1"),
		MarkupFactor:     getEnvFloat("MARKUP_FACTOR", 2.0),

		ListTitle:     getEnv("LIST_TITLE", "Sugestão Carta de Vinhos"),
		CompanyFooter: getEnv("COMPANY_FOOTER", ""),
		CompanySite:   getEnv("COMPANY_SITE", ""),

		MailFromName:    getEnv("MAIL_FROM_NAME", ""),
		MailFromAddress: getEnv("MAIL_FROM_ADDRESS", ""),
	}

	if cfg.MarkupFactor <= 0 {
		return Config{}, fmt.Errorf("MARKUP_FACTOR must be positive, got %v", cfg.MarkupFactor)
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

// HasPriceList reports whether list is one of the configured price lists.
func (c Config) HasPriceList(list string) bool {
	for _, l := range c.PriceLists {
		if l == list {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := getEnv(key, "")
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
