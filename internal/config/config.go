// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values
// Validate config

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type RobotsConfig struct {
	UserAgent string        `yaml:"user_agent"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
	Timeout   time.Duration `yaml:"timeout"`
	Capacity  int           `yaml:"capacity"`
	Respect   *bool         `yaml:"respect"`
}

type SearchConfig struct {
	SerpAPIKey string        `yaml:"serpapi_key" env:"SERPAPI_KEY"`
	Country    string        `yaml:"country"`
	Language   string        `yaml:"language"`
	Interval   time.Duration `yaml:"interval"`
}

type AIConfig struct {
	Provider     string `yaml:"provider" env:"AI_PROVIDER"`
	GroqAPIKey   string `yaml:"groq_api_key" env:"GROQ_API_KEY"`
	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model        string `yaml:"model"`
}

type FetchConfig struct {
	//browser or http
	Mode     string        `yaml:"mode"`
	Headless *bool         `yaml:"headless"`
	Timeout  time.Duration `yaml:"timeout"`
}

// RunConfig holds the default search parameters, overridable per run
type RunConfig struct {
	Mode            string        `yaml:"mode"`
	JobTitle        string        `yaml:"job_title"`
	Location        string        `yaml:"location"`
	YearsExperience int           `yaml:"years_experience"`
	CompanyTier     string        `yaml:"company_tier"`
	MaxCompanies    int           `yaml:"max_companies"`
	JobsPerCompany  int           `yaml:"jobs_per_company"`
	MaxResults      int           `yaml:"max_results"`
	MinScore        int           `yaml:"min_score"`
	JobInterval     time.Duration `yaml:"job_interval"`
	SkipSeen        bool          `yaml:"skip_seen"`
	// 0 keeps postings of any age
	MaxAgeDays int `yaml:"max_age_days"`
}

type Config struct {
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	DatabaseURL    string `yaml:"database_url" env:"DATABASE_URL"`
	Port           string `yaml:"port" env:"PORT"`

	Robots RobotsConfig `yaml:"robots"`
	Search SearchConfig `yaml:"search"`
	AI     AIConfig     `yaml:"ai"`
	Fetch  FetchConfig  `yaml:"fetch"`
	Run    RunConfig    `yaml:"run"`

	//Paths
	CVPath    string `yaml:"cv_path"`
	CachePath string `yaml:"cache_path"`
	LogsDir   string `yaml:"logs_dir"`
	ExportPDF bool   `yaml:"export_pdf"`
}

// Load reads .env and configs/config.yaml and exits on invalid config,
// the way the CLIs want it.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := LoadFile(DefaultPath)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid config: %v", err)
	}
	return cfg
}

// LoadFile builds a Config from a YAML file (missing file is not an error),
// env overrides and defaults. It does not validate.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("could not read %s: %w", path, err)
		}
		log.Printf("⚠️ Could not read %s, using env and defaults", path)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	overrides := map[string]*string{
		"TELEGRAM_BOT_TOKEN": &c.TelegramToken,
		"DATABASE_URL":       &c.DatabaseURL,
		"PORT":               &c.Port,
		"SERPAPI_KEY":        &c.Search.SerpAPIKey,
		"AI_PROVIDER":        &c.AI.Provider,
		"GROQ_API_KEY":       &c.AI.GroqAPIKey,
		"GEMINI_API_KEY":     &c.AI.GeminiAPIKey,
		"SCOUT_USER_AGENT":   &c.Robots.UserAgent,
		"SCOUT_CV_PATH":      &c.CVPath,
	}
	for name, field := range overrides {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.CachePath == "" {
		c.CachePath = ".cache"
	}
	if c.LogsDir == "" {
		c.LogsDir = "logs"
	}
	if c.CVPath == "" {
		c.CVPath = "my_cv.txt"
	}

	//robots
	if c.Robots.UserAgent == "" {
		c.Robots.UserAgent = "JobScoutBot/1.0 (+personal job discovery)"
	}
	if c.Robots.CacheTTL <= 0 {
		c.Robots.CacheTTL = time.Hour
	}
	if c.Robots.Timeout <= 0 {
		c.Robots.Timeout = 5 * time.Second
	}
	if c.Robots.Capacity <= 0 {
		c.Robots.Capacity = 1024
	}
	if c.Robots.Respect == nil {
		c.Robots.Respect = boolPtr(true)
	}

	//search
	if c.Search.Country == "" {
		c.Search.Country = "in"
	}
	if c.Search.Language == "" {
		c.Search.Language = "en"
	}
	if c.Search.Interval <= 0 {
		c.Search.Interval = 2 * time.Second
	}

	//ai
	c.AI.Provider = strings.ToLower(strings.TrimSpace(c.AI.Provider))
	if c.AI.Provider == "" {
		if c.AI.GroqAPIKey == "" && c.AI.GeminiAPIKey != "" {
			c.AI.Provider = "gemini"
		} else {
			c.AI.Provider = "groq"
		}
	}

	//fetch
	if c.Fetch.Mode == "" {
		c.Fetch.Mode = "browser"
	}
	if c.Fetch.Headless == nil {
		c.Fetch.Headless = boolPtr(true)
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = 30 * time.Second
	}

	//run
	if c.Run.Mode == "" {
		c.Run.Mode = "companies"
	}
	if c.Run.JobTitle == "" {
		c.Run.JobTitle = "Software Engineer"
	}
	if c.Run.Location == "" {
		c.Run.Location = "India"
	}
	if c.Run.YearsExperience <= 0 {
		c.Run.YearsExperience = 3
	}
	if c.Run.CompanyTier == "" {
		c.Run.CompanyTier = "all"
	}
	if c.Run.MaxCompanies <= 0 {
		c.Run.MaxCompanies = 10
	}
	if c.Run.JobsPerCompany <= 0 {
		c.Run.JobsPerCompany = 2
	}
	if c.Run.MaxResults <= 0 {
		c.Run.MaxResults = 20
	}
	if c.Run.MinScore <= 0 {
		c.Run.MinScore = 70
	}
	if c.Run.JobInterval <= 0 {
		c.Run.JobInterval = time.Second
	}
}

// Validate checks the fields a discovery run cannot work without
func (c *Config) Validate() error {
	var errs []error

	if c.Search.SerpAPIKey == "" || c.Search.SerpAPIKey == "your_serpapi_key_here" {
		errs = append(errs, errors.New("SERPAPI_KEY is required"))
	}

	switch c.AI.Provider {
	case "groq":
		if c.AI.GroqAPIKey == "" {
			errs = append(errs, errors.New("GROQ_API_KEY is required for provider groq"))
		}
	case "gemini":
		if c.AI.GeminiAPIKey == "" || c.AI.GeminiAPIKey == "your_gemini_api_key_here" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required for provider gemini"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AI provider %q", c.AI.Provider))
	}

	switch c.Fetch.Mode {
	case "browser", "http":
	default:
		errs = append(errs, fmt.Errorf("unknown fetch mode %q", c.Fetch.Mode))
	}

	switch c.Run.Mode {
	case "companies", "skills":
	default:
		errs = append(errs, fmt.Errorf("unknown run mode %q", c.Run.Mode))
	}

	if c.Run.MinScore > 100 {
		errs = append(errs, fmt.Errorf("min_score %d is above 100", c.Run.MinScore))
	}

	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		errs = append(errs, errors.New("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set"))
	}

	return errors.Join(errs...)
}

// RespectRobots is false only when explicitly disabled
func (c *Config) RespectRobots() bool {
	return c.Robots.Respect == nil || *c.Robots.Respect
}

func (c *Config) Headless() bool {
	return c.Fetch.Headless == nil || *c.Fetch.Headless
}

// TelegramEnabled reports whether match notifications should be sent
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func boolPtr(b bool) *bool {
	return &b
}
