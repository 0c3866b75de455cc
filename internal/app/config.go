// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/portfolio-dash/internal/remote"
	"github.com/haierkeys/portfolio-dash/pkg/util"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File      string          `yaml:"-"` // 配置文件路径，不序列化
	Remote    remote.Config   `yaml:"remote"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	DevServer DevServerConfig `yaml:"devserver"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径，为空时输出到 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// DatabaseConfig 偏好设置存储配置
type DatabaseConfig struct {
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/prefs.sqlite3"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// MaxIdleConns 最大闲置连接数
	MaxIdleConns int `yaml:"max-idle-conns" default:"2"`
	// MaxOpenConns 最大打开连接数
	MaxOpenConns int `yaml:"max-open-conns" default:"4"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m、1h
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// Debug 输出 SQL 日志
	Debug bool `yaml:"debug"`
}

// DashboardConfig watch 命令配置
type DashboardConfig struct {
	// RefreshSpec cron 表达式，支持 @every 语法
	RefreshSpec string `yaml:"refresh-spec" default:"@every 1m"`
	// Language 提示信息语言 en / zh_cn
	Language string `yaml:"language" default:"en"`
}

// DevServerConfig 本地开发服务器配置
type DevServerConfig struct {
	// RunMode gin 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// Listen 监听地址
	Listen string `yaml:"listen" default:":9100"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// SecretKey Token 签名密钥
	SecretKey string `yaml:"secret-key" default:"portfolio-dash-Auth-Token"`
	// TokenExpiry Token 过期时间，支持格式：7d（天）、24h（小时）、30m（分钟）
	TokenExpiry string `yaml:"token-expiry" default:"7d"`
	// SeedNotifications 启动时写入示例通知
	SeedNotifications bool `yaml:"seed-notifications" default:"true"`
	// RateLimit 每秒请求数，0 表示不限制
	RateLimit int `yaml:"rate-limit" default:"50"`
	// RateBurst 令牌桶容量
	RateBurst int `yaml:"rate-burst" default:"100"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	if err := yaml.Unmarshal(file, c); err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// defaults.Set 只填充零值字段，YAML 中留空的项在这里补齐
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	return c, realpath, nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	if err := os.WriteFile(c.File, data, 0644); err != nil {
		return errors.Wrap(err, "write config file failed")
	}
	return nil
}

// GetConnMaxLifetime 获取数据库连接最大生命周期
func (c *AppConfig) GetConnMaxLifetime() time.Duration {
	if d, err := util.ParseDuration(c.Database.ConnMaxLifetime); err == nil {
		return d
	}
	return 30 * time.Minute
}

// GetTokenExpiry 获取开发服务器签发 Token 的过期时间
func (c *AppConfig) GetTokenExpiry() time.Duration {
	if expiry, err := util.ParseDuration(c.DevServer.TokenExpiry); err == nil {
		return expiry
	}
	return 7 * 24 * time.Hour
}
