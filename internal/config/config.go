package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App  AppConfig
	Keys APIKeys
	Ai   AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	StaticDir          string
	UploadDir          string
}

type APIKeys struct {
	Groq       string
	AssemblyAI string
}

type AIConfig struct {
	GroqBaseURL string
	ChatModel   string
	VisionModel string
	YtDlpPath   string

	CompletionTimeout    time.Duration
	TranscriptionTimeout time.Duration
	DownloadTimeout      time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "5100"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			StaticDir:          getEnv("STATIC_DIR", "./public"),
			UploadDir:          getEnv("UPLOAD_DIR", "./uploads"),
		},
		Keys: APIKeys{
			Groq:       getEnv("GROQ_API_KEY", ""),
			AssemblyAI: getEnv("ASSEMBLYAI_API_KEY", ""),
		},
		Ai: AIConfig{
			GroqBaseURL: getEnv("GROQ_BASE_URL", ""),
			ChatModel:   getEnv("GROQ_CHAT_MODEL", "llama-3.1-8b-instant"),
			VisionModel: getEnv("GROQ_VISION_MODEL", "meta-llama/llama-4-scout-17b-16e-instruct"),
			YtDlpPath:   getEnv("YTDLP_PATH", "yt-dlp"),

			CompletionTimeout:    getEnvAsDuration("COMPLETION_TIMEOUT_SECONDS", 60*time.Second),
			TranscriptionTimeout: getEnvAsDuration("TRANSCRIPTION_TIMEOUT_SECONDS", 10*time.Minute),
			DownloadTimeout:      getEnvAsDuration("DOWNLOAD_TIMEOUT_SECONDS", 5*time.Minute),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil && value > 0 {
		return time.Duration(value) * time.Second
	}
	return fallback
}
