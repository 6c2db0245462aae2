package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultCategories is the fixed category list the transaction form offers.
// Configured once at start; the aggregation layer never invents or removes
// categories.
var DefaultCategories = []string{
	"Moradia",
	"Alimentação",
	"Transporte",
	"Saúde",
	"Educação",
	"Lazer",
	"Contas",
	"Salário",
	"Freelance",
	"Outros",
}

type Config struct {
	// HTTP Server
	Port string

	// Store backend
	DataBackend  string
	SQLiteDBPath string

	// Session
	SessionTTL time.Duration

	// Demo account
	DemoUser     string
	DemoPassword string
	SeedDemoData bool

	// Domain constants
	Categories         []string
	MonthlyBudgetCents int64

	// Rate limiting
	RateLimitRPM int
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		DataBackend:  getEnv("DATA_BACKEND", "memory"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", ":memory:"),

		SessionTTL: getEnvDuration("SESSION_TTL", 30*time.Minute),

		DemoUser:     getEnv("DEMO_USER", "demo"),
		DemoPassword: getEnv("DEMO_PASSWORD", "Demo@1234"),
		SeedDemoData: getEnvBool("SEED_DEMO_DATA", true),

		Categories:         getEnvList("CATEGORIES", DefaultCategories),
		MonthlyBudgetCents: getEnvInt64("MONTHLY_BUDGET_CENTS", 500000),

		RateLimitRPM: getEnvInt("RATE_LIMIT_RPM", 120),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate SQLite configuration if backend is sqlite
	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if c.SQLiteDBPath != ":memory:" {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	// Validate session TTL
	if c.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid session TTL %v: must be at least 1 minute", c.SessionTTL))
	} else if c.SessionTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid session TTL %v: must be at most 24 hours", c.SessionTTL))
	}

	// Validate demo account
	if strings.TrimSpace(c.DemoUser) == "" {
		errors = append(errors, "demo user cannot be empty")
	}
	if strings.TrimSpace(c.DemoPassword) == "" {
		errors = append(errors, "demo password cannot be empty")
	}

	// Validate category list
	if len(c.Categories) == 0 {
		errors = append(errors, "category list cannot be empty")
	}
	for _, cat := range c.Categories {
		if strings.TrimSpace(cat) == "" {
			errors = append(errors, "category list contains an empty entry")
			break
		}
	}

	// Validate budget threshold
	if c.MonthlyBudgetCents < 0 {
		errors = append(errors, fmt.Sprintf("invalid monthly budget %d: must be non-negative", c.MonthlyBudgetCents))
	}

	// Validate rate limit
	if c.RateLimitRPM < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1 request per minute", c.RateLimitRPM))
	} else if c.RateLimitRPM > 100000 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at most 100000", c.RateLimitRPM))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
