// Load envs from .env
// Load YAML config (search roles + tuning)
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Role is one configured search query from config.yaml.
type Role struct {
	Title               string   `yaml:"title"`
	Location            string   `yaml:"location"`
	ExperienceLevels    []string `yaml:"experience_levels"`
	Remote              bool     `yaml:"remote"`
	DatePosted          string   `yaml:"date_posted"`
	RequiresSponsorship bool     `yaml:"requires_sponsorship"`
	SkipHRCheck         bool     `yaml:"skip_hr_check"`
	Enabled             *bool    `yaml:"enabled"`
}

type Config struct {
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`

	//Judge (OpenAI-compatible chat completions)
	JudgeAPIKey      string  `yaml:"judge_api_key" env:"OPENAI_API_KEY"`
	JudgeBaseURL     string  `yaml:"judge_base_url"`
	JudgeModel       string  `yaml:"judge_model"`
	JudgeRerankModel string  `yaml:"judge_rerank_model"`
	JudgeCallsPerSec float64 `yaml:"judge_calls_per_sec"`

	//Match thresholds (0-10 scale)
	MatchThreshold float64 `yaml:"match_threshold"`
	RerankTrigger  float64 `yaml:"rerank_trigger"`

	//Search criteria
	Roles []Role `yaml:"roles"`

	//Filtering
	MaxApplicants      int  `yaml:"max_applicants"`
	RejectHRCompanies  bool `yaml:"reject_hr_companies"`
	RejectUnpaidRoles  bool `yaml:"reject_unpaid_roles"`
	RejectVolunteer    bool `yaml:"reject_volunteer_roles"`
	MaxExperienceYears int  `yaml:"max_experience_years"`
	AllowPhDRequired   bool `yaml:"allow_phd_required"`

	//Pacing & retry bounds
	RequestDelayMinMs    int `yaml:"request_delay_min_ms"`
	RequestDelayMaxMs    int `yaml:"request_delay_max_ms"`
	DetailFaultRetries   int `yaml:"detail_fault_retries"`
	DetailTimeoutRetries int `yaml:"detail_timeout_retries"`
	ListPageRetries      int `yaml:"list_page_retries"`
	NoMatchPages         int `yaml:"no_match_pages"`
	MaxPeoplePages       int `yaml:"max_people_pages"`

	//Scheduling
	ScrapeIntervalMinutes int `yaml:"scrape_interval_minutes"`

	//Paths
	ResumePath      string `yaml:"resume_path"`
	PreferencesPath string `yaml:"preferences_path"`
	BlocklistPath   string `yaml:"blocklist_path"`
	CookiesPath     string `yaml:"cookies_path"`
	DataDir         string `yaml:"data_dir"`

	Headless bool `yaml:"headless"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.JudgeAPIKey = key
	}
	if model := os.Getenv("JUDGE_MODEL"); model != "" {
		cfg.JudgeModel = model
	}
	if model := os.Getenv("JUDGE_RERANK_MODEL"); model != "" {
		cfg.JudgeRerankModel = model
	}
	if v := os.Getenv("MATCH_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Fatalf("Invalid MATCH_THRESHOLD: %v", err)
		}
		cfg.MatchThreshold = f
	}
	if v := os.Getenv("RERANK_TRIGGER"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Fatalf("Invalid RERANK_TRIGGER: %v", err)
		}
		cfg.RerankTrigger = f
	}
	if v := os.Getenv("SCRAPE_INTERVAL_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("Invalid SCRAPE_INTERVAL_MINUTES: %v", err)
		}
		cfg.ScrapeIntervalMinutes = n
	}
	if path := os.Getenv("RESUME_PATH"); path != "" {
		cfg.ResumePath = path
	}

	//Set default values if not set
	if cfg.JudgeBaseURL == "" {
		cfg.JudgeBaseURL = "https://api.openai.com/v1/chat/completions"
	}
	if cfg.JudgeModel == "" {
		cfg.JudgeModel = "gpt-4o-mini"
	}
	if cfg.JudgeRerankModel == "" {
		cfg.JudgeRerankModel = "gpt-4o"
	}
	if cfg.JudgeCallsPerSec == 0 {
		cfg.JudgeCallsPerSec = 1
	}
	if cfg.MatchThreshold == 0 {
		cfg.MatchThreshold = 8
	}
	if cfg.RerankTrigger == 0 {
		cfg.RerankTrigger = 8
	}
	if cfg.MaxApplicants == 0 {
		cfg.MaxApplicants = 100
	}
	if cfg.RequestDelayMinMs == 0 {
		cfg.RequestDelayMinMs = 2000
	}
	if cfg.RequestDelayMaxMs == 0 {
		cfg.RequestDelayMaxMs = 5000
	}
	if cfg.DetailFaultRetries == 0 {
		cfg.DetailFaultRetries = 3
	}
	if cfg.DetailTimeoutRetries == 0 {
		cfg.DetailTimeoutRetries = 3
	}
	if cfg.ListPageRetries == 0 {
		cfg.ListPageRetries = 3
	}
	if cfg.NoMatchPages == 0 {
		cfg.NoMatchPages = 8
	}
	if cfg.MaxPeoplePages == 0 {
		cfg.MaxPeoplePages = 3
	}
	if cfg.ScrapeIntervalMinutes == 0 {
		cfg.ScrapeIntervalMinutes = 30
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.ResumePath == "" {
		cfg.ResumePath = "data/resume.txt"
	}
	if cfg.PreferencesPath == "" {
		cfg.PreferencesPath = "data/preferences.txt"
	}
	if cfg.BlocklistPath == "" {
		cfg.BlocklistPath = "data/company_blocklist.json"
	}
	if cfg.CookiesPath == "" {
		cfg.CookiesPath = "cookies/cookies-linkedin.json"
	}

	//Validate required fields
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.TelegramChatID == 0 {
		log.Fatal("TELEGRAM_CHAT_ID is required")
	}
	if cfg.JudgeAPIKey == "" {
		log.Fatal("OPENAI_API_KEY is required")
	}

	return cfg
}

// EnabledRoles returns the roles to search this cycle, in configuration order.
func (c *Config) EnabledRoles() []Role {
	var roles []Role
	for _, r := range c.Roles {
		if r.Enabled == nil || *r.Enabled {
			roles = append(roles, r)
		}
	}
	return roles
}
