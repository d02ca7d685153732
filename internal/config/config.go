package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"go-shop-ledger/internal/ledger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultItems is the shop's product list used when the ledger is reset.
var DefaultItems = []string{
	"2 Litre Water", "1 Liter water", "500 ML water", "soda 750ml",
	"600ml cool drinks", "250ml cool drinks", "5rs glass", "3rs glass",
	"2rs glass", "chips", "boti", "water packet", "mixer",
	"cover big", "cover medium", "cover small",
}

type Config struct {
	App struct {
		Env      string
		Port     string
		Timezone string
		Location *time.Location
	}

	Log struct {
		Level string
	}

	Database struct {
		URL      string
		Host     string
		User     string
		Password string
		Name     string
		Port     string
	}

	Ledger struct {
		RevenuePolicy ledger.RevenuePolicy
		AllowBarToMRP bool
		DefaultItems  []string
	}

	Mail struct {
		APIKey string
		APIURL string
		From   string
		To     string
	}

	Metrics struct {
		Enabled bool
	}

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

// Load reads .env files (if present) and then the process environment.
func Load(envFiles ...string) (Config, error) {
	var c Config
	c.EnvFileLoaded = godotenv.Load(envFiles...) == nil

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PORT", "3000")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REVENUE_POLICY", string(ledger.ExcludeTransfers))
	v.SetDefault("ALLOW_BAR_TO_MRP", false)
	v.SetDefault("BREVO_API_URL", "https://api.brevo.com/v3/smtp/email")
	v.SetDefault("METRICS_ENABLED", true)

	c.App.Env = v.GetString("APP_ENV")
	c.App.Port = v.GetString("PORT")
	c.App.Timezone = v.GetString("TIMEZONE")
	c.Log.Level = v.GetString("LOG_LEVEL")

	c.Database.URL = v.GetString("DATABASE_URL")
	c.Database.Host = v.GetString("DB_HOST")
	c.Database.User = v.GetString("DB_USER")
	c.Database.Password = v.GetString("DB_PASSWORD")
	c.Database.Name = v.GetString("DB_NAME")
	c.Database.Port = v.GetString("DB_PORT")

	c.Ledger.AllowBarToMRP = v.GetBool("ALLOW_BAR_TO_MRP")
	c.Ledger.DefaultItems = splitList(v.GetString("DEFAULT_ITEMS"))
	if len(c.Ledger.DefaultItems) == 0 {
		c.Ledger.DefaultItems = append([]string(nil), DefaultItems...)
	}

	c.Mail.APIKey = v.GetString("BREVO_API_KEY")
	c.Mail.APIURL = v.GetString("BREVO_API_URL")
	c.Mail.From = v.GetString("EMAIL_FROM")
	c.Mail.To = v.GetString("EMAIL_TO")

	c.Metrics.Enabled = v.GetBool("METRICS_ENABLED")

	policy, err := ledger.ParseRevenuePolicy(v.GetString("REVENUE_POLICY"))
	if err != nil {
		return c, err
	}
	c.Ledger.RevenuePolicy = policy

	loc, err := loadLocation(c.App.Timezone)
	if err != nil {
		return c, fmt.Errorf("TIMEZONE: %w", err)
	}
	c.App.Location = loc

	return c, nil
}

// IsDev reports whether the app runs in development mode.
func (c Config) IsDev() bool {
	return c.App.Env == "dev"
}

// MailConfigured reports whether report delivery has everything it needs.
func (c Config) MailConfigured() bool {
	return c.Mail.APIKey != "" && c.Mail.From != "" && c.Mail.To != ""
}

// DSN returns DATABASE_URL, or a DSN assembled from the DB_* parts.
func (c Config) DSN() (string, error) {
	if c.Database.URL != "" {
		return c.Database.URL, nil
	}
	if c.Database.Host == "" || c.Database.Name == "" {
		return "", errors.New("database not configured: set DATABASE_URL or DB_HOST and DB_NAME")
	}
	tz := "UTC"
	if c.App.Location != nil && c.App.Location != time.Local {
		tz = c.App.Location.String()
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		c.Database.Host,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.Port,
		tz,
	), nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
