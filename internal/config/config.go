package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	SourceXML    = "xml"
	SourceSQLite = "sqlite"
)

type Config struct {
	Port    int           `mapstructure:"port"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Data    DataConfig    `mapstructure:"data"`
	Discord DiscordConfig `mapstructure:"discord"`
}

type AuthConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type DataConfig struct {
	Source     string `mapstructure:"source"`
	XMLPath    string `mapstructure:"xml_path"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type DiscordConfig struct {
	BotToken  string `mapstructure:"bot_token"`
	ChannelID string `mapstructure:"channel_id"`
	Owner     string `mapstructure:"owner"`
}

// Enabled reports whether the Discord bot has enough settings to start.
func (d DiscordConfig) Enabled() bool {
	return d.BotToken != "" && d.ChannelID != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8000)
	v.SetDefault("auth.username", "admin")
	v.SetDefault("auth.password", "password123")
	v.SetDefault("data.source", SourceXML)
	v.SetDefault("data.xml_path", "data/raw/modified_sms_v2.xml")
	v.SetDefault("data.sqlite_path", "transactions.db")
	v.SetDefault("discord.bot_token", "")
	v.SetDefault("discord.channel_id", "")
	v.SetDefault("discord.owner", "")
}

// Load reads an optional .env file, then MOMO_* environment variables
// (MOMO_AUTH_USERNAME for auth.username and so on) over the defaults.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	} else if err != nil {
		log.Printf("no .env file found, using environment only")
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("MOMO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.Port)
	}
	if c.Auth.Username == "" || c.Auth.Password == "" {
		return fmt.Errorf("auth username and password must be set")
	}
	switch c.Data.Source {
	case SourceXML:
		if c.Data.XMLPath == "" {
			return fmt.Errorf("data.xml_path is not set")
		}
	case SourceSQLite:
		if c.Data.SQLitePath == "" {
			return fmt.Errorf("data.sqlite_path is not set")
		}
	default:
		return fmt.Errorf("unknown data source %q, use %q or %q", c.Data.Source, SourceXML, SourceSQLite)
	}
	if (c.Discord.BotToken == "") != (c.Discord.ChannelID == "") {
		return fmt.Errorf("discord bot token and channel id must be set together")
	}
	return nil
}
