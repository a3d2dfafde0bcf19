package config

import (
	"os"
	"strconv"
	"strings"
)

type Env struct {
	AppAddr        string
	GinMode        string
	DBDSN          string
	JWTSecret      string
	UploadDir      string
	UploadPath     string
	StaticDir      string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":3000"
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/shop?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	uploadDir := strings.TrimSpace(os.Getenv("UPLOAD_DIR"))
	if uploadDir == "" {
		uploadDir = "public/images"
	}
	uploadPath := strings.TrimSpace(os.Getenv("UPLOAD_PATH"))
	if uploadPath == "" {
		uploadPath = "images"
	}

	staticDir := strings.TrimSpace(os.Getenv("STATIC_DIR"))
	if staticDir == "" {
		staticDir = "public"
	}

	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if env := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); env != "" {
		origins = origins[:0]
		for _, o := range strings.Split(env, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	rps := 1.0
	if env := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); env != "" {
		if v, err := strconv.ParseFloat(env, 64); err == nil && v > 0 {
			rps = v
		}
	}
	burst := 60
	if env := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); env != "" {
		if v, err := strconv.Atoi(env); err == nil && v > 0 {
			burst = v
		}
	}

	return Env{
		AppAddr:        appAddr,
		GinMode:        strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:          dsn,
		JWTSecret:      secret,
		UploadDir:      uploadDir,
		UploadPath:     uploadPath,
		StaticDir:      staticDir,
		AllowedOrigins: origins,
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
	}
}
