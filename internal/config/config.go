package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Sources   SourcesConfig   `yaml:"sources" envconfig:"SOURCES"`
	Cluster   ClusterConfig   `yaml:"cluster" envconfig:"CLUSTER"`
	Payroll   PayrollConfig   `yaml:"payroll" envconfig:"PAYROLL"`
	Weather   WeatherConfig   `yaml:"weather" envconfig:"WEATHER"`
	WebSocket WebSocketConfig `yaml:"websocket" envconfig:"WEBSOCKET"`

	// TapTargets holds the per-mainline season tap targets, usually
	// maintained in configs/config.yaml by the operations manager.
	TapTargets map[string]int `yaml:"tap_targets" envconfig:"TAP_TARGETS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"60s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080" validate:"min=1"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/sapflow.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"data/reports"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// SourcesConfig identifies the vacuum and timesheet sources.
// Google Sheets sources need a spreadsheet ID plus an A1 range;
// Excel sources need a workbook path. Either kind may be used for
// either table.
type SourcesConfig struct {
	Vacuum    SheetSource   `yaml:"vacuum" envconfig:"VACUUM"`
	Timesheet SheetSource   `yaml:"timesheet" envconfig:"TIMESHEET"`
	CacheTTL  time.Duration `yaml:"cache_ttl" envconfig:"CACHE_TTL" default:"5m"`
	Credentials string      `yaml:"credentials" envconfig:"CREDENTIALS"`
}

// SheetSource points at one logical table
type SheetSource struct {
	SpreadsheetID string `yaml:"spreadsheet_id" envconfig:"SPREADSHEET_ID"`
	Range         string `yaml:"range" envconfig:"RANGE"`
	WorkbookPath  string `yaml:"workbook_path" envconfig:"WORKBOOK_PATH"`
}

// Configured reports whether the source points anywhere at all
func (s SheetSource) Configured() bool {
	return s.SpreadsheetID != "" || s.WorkbookPath != ""
}

// ClusterConfig tunes DBSCAN over sensor coordinates
type ClusterConfig struct {
	EpsMeters float64 `yaml:"eps_meters" envconfig:"EPS_METERS" default:"150" validate:"gt=0"`
	MinPoints int     `yaml:"min_points" envconfig:"MIN_POINTS" default:"3" validate:"min=1"`
}

// PayrollConfig carries labor-cost settings
type PayrollConfig struct {
	HourlyRate     float64 `yaml:"hourly_rate" envconfig:"HOURLY_RATE" default:"25" validate:"gt=0"`
	OvertimeWeekly float64 `yaml:"overtime_weekly" envconfig:"OVERTIME_WEEKLY" default:"52" validate:"gt=0"`
}

// WeatherConfig tunes the Open-Meteo client
type WeatherConfig struct {
	BaseURL      string        `yaml:"base_url" envconfig:"BASE_URL" default:"https://api.open-meteo.com/v1/forecast"`
	PastDays     int           `yaml:"past_days" envconfig:"PAST_DAYS" default:"7" validate:"min=0,max=92"`
	ForecastDays int           `yaml:"forecast_days" envconfig:"FORECAST_DAYS" default:"7" validate:"min=1,max=16"`
	Timeout      time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"15s"`
}

// WebSocketConfig contains WebSocket configuration
type WebSocketConfig struct {
	ReadBufferSize  int           `yaml:"read_buffer_size" envconfig:"READ_BUFFER_SIZE" default:"1024"`
	WriteBufferSize int           `yaml:"write_buffer_size" envconfig:"WRITE_BUFFER_SIZE" default:"1024"`
	PingPeriod      time.Duration `yaml:"ping_period" envconfig:"PING_PERIOD" default:"30s"`
	PongWait        time.Duration `yaml:"pong_wait" envconfig:"PONG_WAIT" default:"60s"`
}

// Load loads configuration from environment variables and config file.
// Environment variables win over file values; defaults fill the rest.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("SAPFLOW", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config under env config; env takes precedence
// for any field envconfig actually populated past its zero value.
func mergeConfigs(fileConfig, envConfig Config) Config {
	out := envConfig

	if out.Sources.Vacuum.SpreadsheetID == "" {
		out.Sources.Vacuum.SpreadsheetID = fileConfig.Sources.Vacuum.SpreadsheetID
	}
	if out.Sources.Vacuum.Range == "" {
		out.Sources.Vacuum.Range = fileConfig.Sources.Vacuum.Range
	}
	if out.Sources.Vacuum.WorkbookPath == "" {
		out.Sources.Vacuum.WorkbookPath = fileConfig.Sources.Vacuum.WorkbookPath
	}
	if out.Sources.Timesheet.SpreadsheetID == "" {
		out.Sources.Timesheet.SpreadsheetID = fileConfig.Sources.Timesheet.SpreadsheetID
	}
	if out.Sources.Timesheet.Range == "" {
		out.Sources.Timesheet.Range = fileConfig.Sources.Timesheet.Range
	}
	if out.Sources.Timesheet.WorkbookPath == "" {
		out.Sources.Timesheet.WorkbookPath = fileConfig.Sources.Timesheet.WorkbookPath
	}
	if out.Sources.Credentials == "" {
		out.Sources.Credentials = fileConfig.Sources.Credentials
	}
	if len(out.Security.AllowedOrigins) == 0 {
		out.Security.AllowedOrigins = fileConfig.Security.AllowedOrigins
	}
	if len(out.TapTargets) == 0 {
		out.TapTargets = fileConfig.TapTargets
	}

	return out
}

// resolvePaths makes the configured directories absolute relative to
// the working directory and creates them.
func (c *Config) resolvePaths() error {
	for _, dir := range []*string{&c.Paths.DataDir, &c.Paths.ReportsDir, &c.Paths.LogsDir} {
		if *dir == "" {
			continue
		}
		if !filepath.IsAbs(*dir) {
			abs, err := filepath.Abs(*dir)
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", *dir, err)
			}
			*dir = abs
		}
		if err := os.MkdirAll(*dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", *dir, err)
		}
	}
	return nil
}

// Validate checks the configuration using struct tags plus a few rules
// validator cannot express.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}

	// JSON is the only supported log format; silently normalize rather
	// than failing startup over a cosmetic setting.
	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output != "both" && c.Logging.Output != "file" && c.Logging.Output != "stdout" {
		c.Logging.Output = "both"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/sapflow.log"
	}

	if c.Sources.Vacuum.SpreadsheetID != "" && c.Sources.Vacuum.Range == "" {
		return fmt.Errorf("sources.vacuum.range is required with a spreadsheet id")
	}
	if c.Sources.Timesheet.SpreadsheetID != "" && c.Sources.Timesheet.Range == "" {
		return fmt.Errorf("sources.timesheet.range is required with a spreadsheet id")
	}

	return nil
}

// ReportPath returns the absolute path for a report file name
func (c *Config) ReportPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Paths.ReportsDir, name)
}

// getConfigFilePath returns the path to the config file, if any
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration, used by tests and cmd/report
// when no config file or environment is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  60 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "both",
			FilePath: "logs/sapflow.log",
		},
		Paths: PathsConfig{
			DataDir:    "data",
			ReportsDir: "data/reports",
			LogsDir:    "logs",
		},
		Sources: SourcesConfig{
			CacheTTL: DataCacheTTL,
		},
		Cluster: ClusterConfig{
			EpsMeters: DefaultClusterEpsMeters,
			MinPoints: DefaultClusterMinPoints,
		},
		Payroll: PayrollConfig{
			HourlyRate:     DefaultHourlyRate,
			OvertimeWeekly: OvertimeWeeklyHours,
		},
		Weather: WeatherConfig{
			BaseURL:      "https://api.open-meteo.com/v1/forecast",
			PastDays:     7,
			ForecastDays: 7,
			Timeout:      WeatherRequestTimeout,
		},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  WebSocketReadBufferSize,
			WriteBufferSize: WebSocketWriteBufferSize,
			PingPeriod:      WebSocketPingPeriod,
			PongWait:        WebSocketPongWait,
		},
	}
}
