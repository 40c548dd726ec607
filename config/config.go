package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	Planner   PlannerConfig   `mapstructure:"planner"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Schedule  ScheduleConfig  `mapstructure:"schedule"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port    int        `mapstructure:"port"`
	BaseURL string     `mapstructure:"base_url"`
	CORS    CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL 数据库配置
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 分钟
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 缓存配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT 认证配置（令牌由外部身份服务签发，这里只做校验）
type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PlannerConfig 排课引擎与布局配置
type PlannerConfig struct {
	DefaultMode        string  `mapstructure:"default_mode"`
	DayStartHour       int     `mapstructure:"day_start_hour"`
	DayEndHour         int     `mapstructure:"day_end_hour"`
	PixelsPerMinute    float64 `mapstructure:"pixels_per_minute"`
	UsableWidthPercent float64 `mapstructure:"usable_width_percent"`
	MarginPercent      float64 `mapstructure:"margin_percent"`
	TermWeeks          int     `mapstructure:"term_weeks"`
	Timezone           string  `mapstructure:"timezone"`
}

// CatalogConfig 课程目录配置
type CatalogConfig struct {
	GeneralDepartments []string      `mapstructure:"general_departments"`
	CacheTTL           time.Duration `mapstructure:"cache_ttl"`
}

// ScheduleConfig 已保存课表配置
type ScheduleConfig struct {
	MaxPerStudent   int `mapstructure:"max_per_student"`
	ShareCodeLength int `mapstructure:"share_code_length"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	SavePerMinute int `mapstructure:"save_per_minute"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.base_url", "http://localhost:8000")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "calendar")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Jerusalem")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.access_token_ttl", "24h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("planner.default_mode", "bundled")
	v.SetDefault("planner.day_start_hour", 8)
	v.SetDefault("planner.day_end_hour", 22)
	v.SetDefault("planner.pixels_per_minute", 1.0)
	v.SetDefault("planner.usable_width_percent", 95.0)
	v.SetDefault("planner.margin_percent", 2.5)
	v.SetDefault("planner.term_weeks", 13)
	v.SetDefault("planner.timezone", "Asia/Jerusalem")

	v.SetDefault("catalog.general_departments", []string{"אנגלית", "כללי"})
	v.SetDefault("catalog.cache_ttl", "1h")

	v.SetDefault("schedule.max_per_student", 5)
	v.SetDefault("schedule.share_code_length", 8)

	v.SetDefault("rate_limit.save_per_minute", 10)
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 不能为空")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if c.Planner.DefaultMode != "bundled" && c.Planner.DefaultMode != "free_form" {
		return fmt.Errorf("配置校验失败: planner.default_mode 只能是 bundled 或 free_form")
	}
	if c.Planner.DayStartHour < 0 || c.Planner.DayStartHour >= c.Planner.DayEndHour || c.Planner.DayEndHour > 24 {
		return fmt.Errorf("配置校验失败: planner.day_start_hour 必须早于 planner.day_end_hour")
	}
	if c.Planner.PixelsPerMinute <= 0 || c.Planner.UsableWidthPercent <= 0 {
		return fmt.Errorf("配置校验失败: planner 布局参数必须为正数")
	}
	if c.Schedule.MaxPerStudent <= 0 {
		return fmt.Errorf("配置校验失败: schedule.max_per_student 必须大于 0")
	}
	if c.Schedule.ShareCodeLength < 4 || c.Schedule.ShareCodeLength > 32 {
		return fmt.Errorf("配置校验失败: schedule.share_code_length 必须在 4-32 之间")
	}
	return nil
}
