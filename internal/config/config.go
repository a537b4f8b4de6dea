package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix     = "ENVMON"
	envConfigPath = "ENVMON_CONFIG"
)

type Config struct {
	Port       string           `mapstructure:"port"`
	Log        LogConfig        `mapstructure:"log"`
	DB         DBConfig         `mapstructure:"db"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Feed       FeedConfig       `mapstructure:"feed"`
	Poll       PollConfig       `mapstructure:"poll"`
	Alerts     AlertsConfig     `mapstructure:"alerts"`
	Thresholds ThresholdsConfig `mapstructure:"thresholds"`
	Notify     NotifyConfig     `mapstructure:"notify"`
	Session    SessionConfig    `mapstructure:"session"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

type FeedConfig struct {
	Source    string        `mapstructure:"source"` // thingspeak | simulator
	BaseURL   string        `mapstructure:"base_url"`
	ChannelID string        `mapstructure:"channel_id"`
	ReadKey   string        `mapstructure:"read_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type PollConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Range    string        `mapstructure:"range"`
}

type AlertsConfig struct {
	Capacity int `mapstructure:"capacity"`
}

type ThresholdsConfig struct {
	TempHigh float64 `mapstructure:"temp_high"`
	TempLow  float64 `mapstructure:"temp_low"`
	HumHigh  float64 `mapstructure:"hum_high"`
	HumLow   float64 `mapstructure:"hum_low"`
}

type NotifyConfig struct {
	SystemPermission string        `mapstructure:"system_permission"`
	DispatchTimeout  time.Duration `mapstructure:"dispatch_timeout"`
	MQTT             MQTTConfig    `mapstructure:"mqtt"`
}

type MQTTConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Broker         string        `mapstructure:"broker"`
	ClientID       string        `mapstructure:"client_id"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	Topic          string        `mapstructure:"topic"`
	QoS            int           `mapstructure:"qos"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type SessionConfig struct {
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "app.db")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("feed.source", "thingspeak")
	v.SetDefault("feed.base_url", "https://api.thingspeak.com")
	v.SetDefault("feed.timeout", 10*time.Second)
	v.SetDefault("poll.interval", 20*time.Second)
	v.SetDefault("poll.range", "24h")
	v.SetDefault("alerts.capacity", 20)
	v.SetDefault("thresholds.temp_high", 30.0)
	v.SetDefault("thresholds.temp_low", 15.0)
	v.SetDefault("thresholds.hum_high", 75.0)
	v.SetDefault("thresholds.hum_low", 30.0)
	v.SetDefault("notify.system_permission", "granted")
	v.SetDefault("notify.dispatch_timeout", 5*time.Second)
	v.SetDefault("notify.mqtt.enabled", false)
	v.SetDefault("notify.mqtt.client_id", "envmonitor")
	v.SetDefault("notify.mqtt.topic", "envmonitor/incidents")
	v.SetDefault("notify.mqtt.qos", 1)
	v.SetDefault("notify.mqtt.connect_timeout", 10*time.Second)
	v.SetDefault("session.sweep_interval", time.Minute)
}

// Load reads .env (if present), then the YAML config file, then ENVMON_*
// environment overrides. path may name a file or be empty, in which case
// ENVMON_CONFIG or configs/config.yml is used. A missing file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = os.Getenv(envConfigPath)
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Auth.SigningKey) == "" {
		problems = append(problems, "auth.signing_key is required")
	}
	switch c.Feed.Source {
	case "thingspeak":
		if c.Feed.ChannelID == "" {
			problems = append(problems, "feed.channel_id is required for the thingspeak source")
		}
	case "simulator":
	default:
		problems = append(problems, fmt.Sprintf("feed.source %q is not one of thingspeak, simulator", c.Feed.Source))
	}
	if c.Poll.Interval <= 0 {
		problems = append(problems, "poll.interval must be positive")
	}
	if c.Notify.MQTT.Enabled && c.Notify.MQTT.Broker == "" {
		problems = append(problems, "notify.mqtt.broker is required when mqtt is enabled")
	}
	if c.Notify.MQTT.QoS < 0 || c.Notify.MQTT.QoS > 2 {
		problems = append(problems, "notify.mqtt.qos must be 0, 1 or 2")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
