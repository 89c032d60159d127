package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type DiscordConfig struct {
	BotToken         string
	GuildID          string
	UpdatesChannelID string
	UpdateRoleID     string
	LogChannelID     string
}

// IsConfigured returns true if all required Discord configuration is present
func (c DiscordConfig) IsConfigured() bool {
	return c.BotToken != "" &&
		c.GuildID != "" &&
		c.UpdatesChannelID != "" &&
		c.UpdateRoleID != "" &&
		c.LogChannelID != ""
}

type TrackerConfig struct {
	// Repo is the tracked repository in "owner/name" form
	Repo string
	// Token is optional for polling public repositories, but without it the
	// issue command cannot file issues
	Token string
}

// IsConfigured returns true if the required tracker configuration is present
func (c TrackerConfig) IsConfigured() bool {
	return c.Repo != ""
}

type AppConfig struct {
	Environment       string
	Port              string // Optional with default "8080"
	DevMode           bool   // If true, the dispatcher permission gate is bypassed
	UnlockKey         string
	LabelCachePath    string
	PermissionsPath   string
	ReconcileInterval time.Duration
	AlertWebhookURL   string
	UseStrictConfig   bool // If true, fail startup when an integration is missing config

	DiscordConfig DiscordConfig
	TrackerConfig TrackerConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	reconcileInterval, err := time.ParseDuration(getEnvWithDefault("RECONCILE_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECONCILE_INTERVAL: %w", err)
	}

	config := &AppConfig{
		Environment:       getEnvWithDefault("ENVIRONMENT", "dev"),
		Port:              getEnvWithDefault("PORT", "8080"),
		DevMode:           getEnvWithDefault("DEV_MODE", "false") == "true",
		UnlockKey:         os.Getenv("UNLOCK_KEY"),
		LabelCachePath:    getEnvWithDefault("LABEL_CACHE_PATH", "labels.json"),
		PermissionsPath:   getEnvWithDefault("PERMISSIONS_PATH", "unlocked_guilds.json"),
		ReconcileInterval: reconcileInterval,
		AlertWebhookURL:   os.Getenv("ALERT_WEBHOOK_URL"),
		UseStrictConfig:   getEnvWithDefault("USE_STRICT_CONFIG", "true") == "true",

		DiscordConfig: DiscordConfig{
			BotToken:         os.Getenv("DISCORD_BOT_TOKEN"),
			GuildID:          os.Getenv("DISCORD_GUILD_ID"),
			UpdatesChannelID: os.Getenv("UPDATES_CHANNEL_ID"),
			UpdateRoleID:     os.Getenv("UPDATE_ROLE_ID"),
			LogChannelID:     os.Getenv("LOG_CHANNEL_ID"),
		},

		TrackerConfig: TrackerConfig{
			Repo:  os.Getenv("GITHUB_REPO"),
			Token: os.Getenv("GITHUB_TOKEN"),
		},
	}

	if config.DiscordConfig.IsConfigured() {
		log.Printf("✅ Discord integration configured")
	} else {
		log.Printf("⚠️ Discord integration not fully configured")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("discord integration is not fully configured")
		}
	}

	if config.TrackerConfig.IsConfigured() {
		log.Printf("✅ Tracker integration configured for %s", config.TrackerConfig.Repo)
	} else {
		log.Printf("⚠️ Tracker integration not configured")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("tracker integration is not fully configured")
		}
	}

	if config.UnlockKey == "" {
		log.Printf("⚠️ UNLOCK_KEY not set - the unlock command will refuse all guilds")
	}

	return config, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
