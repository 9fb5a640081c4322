package sys

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/disgoorg/snowflake/v2"
	"github.com/joho/godotenv"
)

type Config struct {
	Token     string
	GuildID   string
	DataPath  string
	Silent    bool
	LogToFile bool
}

// Validate ensures the configuration is valid and meets requirements.
func (c *Config) Validate() error {
	if c.Token == "" {
		return errors.New(MsgConfigMissingToken)
	}

	if c.GuildID != "" {
		if _, err := snowflake.Parse(c.GuildID); err != nil || len(c.GuildID) < 17 || len(c.GuildID) > 20 {
			return fmt.Errorf(MsgConfigBadGuildID, c.GuildID)
		}
	}

	return nil
}

// DevMode reports whether commands go to a single development guild.
func (c *Config) DevMode() bool {
	return c.GuildID != ""
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	token := strings.TrimSpace(os.Getenv("DISCORD_TOKEN"))
	if token == "" {
		token = strings.TrimSpace(os.Getenv("TOKEN"))
	}

	cfg := &Config{
		Token:     token,
		GuildID:   strings.TrimSpace(os.Getenv("GUILD_ID")),
		DataPath:  strings.TrimSpace(os.Getenv("DATA_PATH")),
		Silent:    envBool("SILENT"),
		LogToFile: envBool("LOG_TO_FILE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func envBool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}
