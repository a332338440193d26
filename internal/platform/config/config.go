package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	MongoURL     string
	DatabaseName string
	Port         string
	IsProduction bool

	JWTSecret               string
	JWTIssuer               string
	AccessTokenExpiry       time.Duration
	RefreshTokenExpiry      time.Duration
	SessionInactivityWindow time.Duration

	AdminUsername string
	AdminPassword string

	UploadDir              string
	MaxFileSize            int64
	AllowedExtensions      []string
	MaxVideoSize           int64
	AllowedVideoExtensions []string

	UseS3       bool
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Region    string
	S3Bucket    string
	S3UseSSL    bool

	FrontendBaseURL string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("MONGODB_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "inkpad")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "inkpad-backend")
	viper.SetDefault("ACCESS_TOKEN_EXPIRY", "30m")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY", "720h")
	viper.SetDefault("SESSION_INACTIVITY_WINDOW", "24h")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("MAX_FILE_SIZE", 5*1024*1024)
	viper.SetDefault("ALLOWED_EXTENSIONS", "jpg,jpeg,png,gif,webp")
	viper.SetDefault("MAX_VIDEO_SIZE", 100*1024*1024)
	viper.SetDefault("ALLOWED_VIDEO_EXTENSIONS", "mp4,webm,ogg,mov,avi")
	viper.SetDefault("USE_S3", false)
	viper.SetDefault("S3_ENDPOINT", "s3.amazonaws.com")
	viper.SetDefault("S3_ACCESS_KEY", "")
	viper.SetDefault("S3_SECRET_KEY", "")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("S3_BUCKET", "")
	viper.SetDefault("S3_USE_SSL", true)
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.MongoURL = viper.GetString("MONGODB_URL")
	cfg.DatabaseName = viper.GetString("DATABASE_NAME")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.AccessTokenExpiry = parseDurationOr("ACCESS_TOKEN_EXPIRY", 30*time.Minute)
	cfg.RefreshTokenExpiry = parseDurationOr("REFRESH_TOKEN_EXPIRY", 30*24*time.Hour)
	cfg.SessionInactivityWindow = parseDurationOr("SESSION_INACTIVITY_WINDOW", 24*time.Hour)

	cfg.AdminUsername = viper.GetString("ADMIN_USERNAME")
	cfg.AdminPassword = viper.GetString("ADMIN_PASSWORD")
	if cfg.AdminPassword == "" {
		log.Println("Warning: ADMIN_PASSWORD not set. Admin bootstrap login is disabled.")
	}

	cfg.UploadDir = viper.GetString("UPLOAD_DIR")
	cfg.MaxFileSize = viper.GetInt64("MAX_FILE_SIZE")
	cfg.AllowedExtensions = splitList(viper.GetString("ALLOWED_EXTENSIONS"))
	cfg.MaxVideoSize = viper.GetInt64("MAX_VIDEO_SIZE")
	cfg.AllowedVideoExtensions = splitList(viper.GetString("ALLOWED_VIDEO_EXTENSIONS"))

	cfg.UseS3 = viper.GetBool("USE_S3")
	cfg.S3Endpoint = viper.GetString("S3_ENDPOINT")
	cfg.S3AccessKey = viper.GetString("S3_ACCESS_KEY")
	cfg.S3SecretKey = viper.GetString("S3_SECRET_KEY")
	cfg.S3Region = viper.GetString("S3_REGION")
	cfg.S3Bucket = viper.GetString("S3_BUCKET")
	cfg.S3UseSSL = viper.GetBool("S3_USE_SSL")
	if cfg.UseS3 && (cfg.S3AccessKey == "" || cfg.S3Bucket == "") {
		log.Println("Warning: USE_S3 is enabled but S3_ACCESS_KEY or S3_BUCKET is not set.")
	}

	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	return cfg, nil
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
