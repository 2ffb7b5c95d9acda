package config

import (
	"fmt"
	"os"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8000）

	GoEnv string // dev/prod

	// トークン設定（access/refreshで別シークレット・別TTL）
	Token TokenConfig

	// CookieのSecure属性（本番はtrue）
	CookieSecure bool

	// アップロードの一時保存先（Cloudinaryへ上げたら消す）
	TempUploadDir string

	// Cloudinary
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

// TokenConfigはトークン発行・検証の設定。
// usecaseへそのまま注入する（環境変数を直接読まない）。
type TokenConfig struct {
	AccessSecret  string        // accessトークン署名シークレット
	AccessTTL     time.Duration // accessトークン有効期限
	RefreshSecret string        // refreshトークン署名シークレット
	RefreshTTL    time.Duration // refreshトークン有効期限
}

// Loadは環境変数
func Load() (Config, error) {
	accessTTL, err := durationEnv("ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return Config{}, err
	}
	refreshTTL, err := durationEnv("REFRESH_TOKEN_TTL", 10*24*time.Hour)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getenv("PORT", "8000"),

		GoEnv: getenv("GO_ENV", "dev"),

		Token: TokenConfig{
			AccessSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
			AccessTTL:     accessTTL,
			RefreshSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
			RefreshTTL:    refreshTTL,
		},

		CookieSecure:  boolEnv("COOKIE_SECURE", true),
		TempUploadDir: getenv("TEMP_UPLOAD_DIR", "./public/temp"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
	}

	//必須チェック
	if cfg.Token.AccessSecret == "" {
		return Config{}, fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}
	if cfg.Token.RefreshSecret == "" {
		return Config{}, fmt.Errorf("REFRESH_TOKEN_SECRET is required")
	}
	if cfg.Token.AccessSecret == cfg.Token.RefreshSecret {
		return Config{}, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	if cfg.CloudinaryCloudName == "" {
		return Config{}, fmt.Errorf("CLOUDINARY_CLOUD_NAME is required")
	}
	if cfg.CloudinaryAPIKey == "" {
		return Config{}, fmt.Errorf("CLOUDINARY_API_KEY is required")
	}
	if cfg.CloudinaryAPISecret == "" {
		return Config{}, fmt.Errorf("CLOUDINARY_API_SECRET is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

// "15m"や"240h"のduration表記を読む
func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}

func boolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	default:
		return def
	}
}
