package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	AllowOrigins      string `mapstructure:"ALLOW_ORIGINS"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Public assets (synthesized MP3s served under /public).
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL"`
	PublicDir     string `mapstructure:"PUBLIC_DIR"`

	// Redis configuration (dialog session state).
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisDialogDB    int    `mapstructure:"REDIS_DIALOG_DB"`
	DialogTTLMinutes int    `mapstructure:"DIALOG_TTL_MINUTES"`

	// OpenAI (chat + whisper transcription).
	OpenAIAPIKey    string `mapstructure:"OPENAI_API_KEY"`
	OpenAIChatModel string `mapstructure:"OPENAI_CHAT_MODEL"`
	SpecialPrompt   string `mapstructure:"SPECIAL_PROMPT"`
	InfoReply       string `mapstructure:"ASSISTANT_INFO_REPLY"`

	// Recap notifications (mono-tenant: one fixed recipient).
	ClientNotificationEmail string `mapstructure:"CLIENT_NOTIFICATION_EMAIL"`
	SMTPHost                string `mapstructure:"SMTP_HOST"`
	SMTPPort                int    `mapstructure:"SMTP_PORT"`
	SMTPUser                string `mapstructure:"SMTP_USER"`
	SMTPPass                string `mapstructure:"SMTP_PASS"`
	SMTPStartTLS            bool   `mapstructure:"SMTP_STARTTLS"`

	// Speech synthesis.
	TTSProvider    string `mapstructure:"TTS_PROVIDER"`
	AzureTTSKey    string `mapstructure:"AZURE_TTS_KEY"`
	AzureTTSRegion string `mapstructure:"AZURE_TTS_REGION"`
	AzureTTSVoice  string `mapstructure:"AZURE_TTS_VOICE"`
	ElevenAPIKey   string `mapstructure:"ELEVEN_API_KEY"`
	ElevenVoiceID  string `mapstructure:"ELEVEN_VOICE_ID"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ALLOW_ORIGINS", "*")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	viper.SetDefault("PUBLIC_DIR", "./public")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DIALOG_DB", 0)
	viper.SetDefault("DIALOG_TTL_MINUTES", 30)
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_CHAT_MODEL", "gpt-4o-mini")
	viper.SetDefault("SPECIAL_PROMPT", "Tu es un assistant utile, clair et concis.")
	viper.SetDefault("ASSISTANT_INFO_REPLY", "Je peux vous aider à réserver, commander ou prendre un rendez-vous.")
	viper.SetDefault("CLIENT_NOTIFICATION_EMAIL", "")
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 465)
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASS", "")
	viper.SetDefault("SMTP_STARTTLS", false)
	viper.SetDefault("TTS_PROVIDER", "azure")
	viper.SetDefault("AZURE_TTS_KEY", "")
	viper.SetDefault("AZURE_TTS_REGION", "westeurope")
	viper.SetDefault("AZURE_TTS_VOICE", "fr-FR-DeniseNeural")
	viper.SetDefault("ELEVEN_API_KEY", "")
	viper.SetDefault("ELEVEN_VOICE_ID", "Rachel")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
