package providers

import (
	"activitydash/internal/structures"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8080)
	v.SetDefault("backend.timeout", "10s")
	v.SetDefault("backend.jobTimeout", "5m")
	v.SetDefault("backend.sessionCookie", "session_token")
	v.SetDefault("backend.postsLimit", 50)
	v.SetDefault("backend.notificationsLimit", 50)
	v.SetDefault("display.timezone", "Local")
	v.SetDefault("display.truncateAt", 200)
	v.SetDefault("display.externalHosts", []string{"linkedin.com"})
	v.SetDefault("toast.duration", "3s")
	v.SetDefault("upload.closeDelay", "2s")
	v.SetDefault("upload.maxBytes", 5<<20)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", DefaultCacheSizeMB)
	v.SetDefault("monitor.interval", "30s")
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")
	setConfigDefaults(v)

	v.BindEnv("logger.level", "DASH_LOG_LEVEL")
	v.BindEnv("backend.baseURL", "DASH_BACKEND_URL")
	v.BindEnv("backend.timeout", "DASH_BACKEND_TIMEOUT")
	v.BindEnv("webServer.port", "DASH_PORT")
	v.BindEnv("display.timezone", "DASH_TIMEZONE")
	v.BindEnv("cache.size", "DASH_CACHE_SIZE")
	v.BindEnv("metrics.enabled", "DASH_METRICS_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "ActivityDashboard"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
