package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config aggregates every runtime setting of the scheduler binaries.
type Config struct {
	Env  string
	Port int

	Log       LogConfig
	Inputs    InputsConfig
	Results   ResultsConfig
	Scheduler SchedulerConfig
}

// LogConfig tunes the zap logger.
type LogConfig struct {
	Level  string
	Format string
}

// InputsConfig points at the CSV input tables.
type InputsConfig struct {
	Dir string
}

// ResultsConfig controls report output.
type ResultsConfig struct {
	Dir        string
	PDFSummary bool
}

// SchedulerConfig carries every engine knob. The engine never hardcodes
// calendars, durations, capacities or thresholds; they all come from here.
type SchedulerConfig struct {
	// Windows holds day windows as "2006-01-02 15:04-15:04" entries.
	Windows            []string
	Granularity        time.Duration
	GroupDuration      time.Duration
	IndividualDuration time.Duration
	GroupMinApplicants int
	GroupMaxApplicants int
	GroupMinRecruiters int
	SpacingWindow      time.Duration
	RefineIterations   int
	Parallel           bool
	ProposalTTL        time.Duration
}

// Load reads configuration from .env and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Inputs = InputsConfig{Dir: v.GetString("INPUTS_DIR")}
	cfg.Results = ResultsConfig{
		Dir:        v.GetString("RESULTS_DIR"),
		PDFSummary: v.GetBool("RESULTS_PDF_SUMMARY"),
	}

	cfg.Scheduler = SchedulerConfig{
		Windows:            splitAndTrim(v.GetString("SCHEDULER_WINDOWS")),
		Granularity:        parseDuration(v.GetString("SCHEDULER_GRANULARITY"), 20*time.Minute),
		GroupDuration:      parseDuration(v.GetString("SCHEDULER_GROUP_DURATION"), 40*time.Minute),
		IndividualDuration: parseDuration(v.GetString("SCHEDULER_INDIVIDUAL_DURATION"), 20*time.Minute),
		GroupMinApplicants: v.GetInt("SCHEDULER_GROUP_MIN_APPLICANTS"),
		GroupMaxApplicants: v.GetInt("SCHEDULER_GROUP_MAX_APPLICANTS"),
		GroupMinRecruiters: v.GetInt("SCHEDULER_GROUP_MIN_RECRUITERS"),
		SpacingWindow:      parseDuration(v.GetString("SCHEDULER_SPACING_WINDOW"), 90*time.Minute),
		RefineIterations:   v.GetInt("SCHEDULER_REFINE_ITERATIONS"),
		Parallel:           v.GetBool("SCHEDULER_PARALLEL"),
		ProposalTTL:        parseDuration(v.GetString("SCHEDULER_PROPOSAL_TTL"), 30*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("INPUTS_DIR", "inputs")
	v.SetDefault("RESULTS_DIR", "results")
	v.SetDefault("RESULTS_PDF_SUMMARY", true)

	// Fall 2025 recruiting calendar: weekday evenings plus two full
	// weekend days.
	v.SetDefault("SCHEDULER_WINDOWS", strings.Join([]string{
		"2025-09-11 17:00-21:00",
		"2025-09-12 17:00-21:00",
		"2025-09-13 09:00-21:00",
		"2025-09-14 09:00-21:00",
		"2025-09-15 17:00-21:00",
	}, ";"))
	v.SetDefault("SCHEDULER_GRANULARITY", "20m")
	v.SetDefault("SCHEDULER_GROUP_DURATION", "40m")
	v.SetDefault("SCHEDULER_INDIVIDUAL_DURATION", "20m")
	v.SetDefault("SCHEDULER_GROUP_MIN_APPLICANTS", 4)
	v.SetDefault("SCHEDULER_GROUP_MAX_APPLICANTS", 8)
	v.SetDefault("SCHEDULER_GROUP_MIN_RECRUITERS", 4)
	v.SetDefault("SCHEDULER_SPACING_WINDOW", "90m")
	v.SetDefault("SCHEDULER_REFINE_ITERATIONS", 50)
	v.SetDefault("SCHEDULER_PARALLEL", true)
	v.SetDefault("SCHEDULER_PROPOSAL_TTL", "30m")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
