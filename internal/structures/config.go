package structures

import (
	"strings"
	"time"
)

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type BackendConfig struct {
	BaseURL            string        `yaml:"baseURL" validate:"required|fullUrl"`
	Timeout            time.Duration `yaml:"timeout" validate:"required|min:1"`
	JobTimeout         time.Duration `yaml:"jobTimeout" validate:"required|min:1"`
	LoginURL           string        `yaml:"loginURL"`
	SessionCookie      string        `yaml:"sessionCookie" validate:"required"`
	PostsLimit         int           `yaml:"postsLimit" validate:"required|min:1"`
	NotificationsLimit int           `yaml:"notificationsLimit" validate:"required|min:1"`
}

// Login is where browsers without a backend session are sent. Unset, it is
// the backend's own entry page.
func (b BackendConfig) Login() string {
	if b.LoginURL != "" {
		return b.LoginURL
	}
	return strings.TrimRight(b.BaseURL, "/") + "/"
}

func (b BackendConfig) SwitchUser() string {
	return strings.TrimRight(b.BaseURL, "/") + "/switch-user"
}

type DisplayConfig struct {
	Timezone      string   `yaml:"timezone"`
	TruncateAt    int      `yaml:"truncateAt"`
	ExternalHosts []string `yaml:"externalHosts"`
}

type ToastConfig struct {
	Duration time.Duration `yaml:"duration"`
}

type UploadConfig struct {
	CloseDelay time.Duration `yaml:"closeDelay"`
	MaxBytes   int64         `yaml:"maxBytes"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type MonitorConfig struct {
	Interval time.Duration `yaml:"interval"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Backend   BackendConfig `yaml:"backend"`
	Display   DisplayConfig `yaml:"display"`
	Toast     ToastConfig   `yaml:"toast"`
	Upload    UploadConfig  `yaml:"upload"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
	Monitor   MonitorConfig `yaml:"monitor"`
}
