package main

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"wayfare/internal/ratelimit"
	"wayfare/internal/util"
	"wayfare/pkg/storage"
	"wayfare/services/api/internal/app"
	"wayfare/services/api/internal/config"
	"wayfare/services/api/internal/server"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	sessionTTL, err := config.ParseDurationOption("sessionTTL", cfg.SessionTTL)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	jwtLeeway, err := config.ParseDurationOption("jwtLeeway", cfg.JWTLeeway)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	otpTTL, err := config.ParseDurationOption("otpTTL", cfg.OTPTTL)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	otpResend, err := config.ParseDurationOption("otpResendInterval", cfg.OTPResendInterval)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	trustedProxies, err := util.NewTrustedProxies(config.ParseTrustedProxies(cfg.TrustedProxies))
	if err != nil {
		log.Fatalf("failed to parse trusted proxies: %v", err)
	}

	var media storage.ObjectStore
	if cfg.MinioEndpoint != "" {
		minioStore, err := storage.NewMinioStore(
			cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey,
			cfg.MinioBucket, cfg.MinioUseSSL,
		)
		if err != nil {
			log.Fatalf("failed to init media storage: %v", err)
		}
		media = minioStore
	}

	var otpLimiter *ratelimit.FixedWindowLimiter
	if cfg.OTPRatePerMinute > 0 {
		otpLimiter, err = ratelimit.NewRedisFixedWindowLimiter(
			cfg.RedisAddr, cfg.RedisPassword, "wayfare:ratelimit:otp",
			cfg.OTPRatePerMinute, time.Minute,
		)
		if err != nil {
			log.Fatalf("failed to init otp limiter: %v", err)
		}
	}
	var reactionLimiter *ratelimit.FixedWindowLimiter
	if cfg.ReactionRatePerMin > 0 {
		reactionLimiter, err = ratelimit.NewRedisFixedWindowLimiter(
			cfg.RedisAddr, cfg.RedisPassword, "wayfare:ratelimit:reaction",
			cfg.ReactionRatePerMin, time.Minute,
		)
		if err != nil {
			log.Fatalf("failed to init reaction limiter: %v", err)
		}
	}

	appCore, err := app.New(app.Config{
		DatabaseURL:   cfg.DatabaseURL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		JWTSecret:     cfg.JWTSecret,
		JWTIssuer:     cfg.JWTIssuer,
		JWTAudience:   cfg.JWTAudience,
		JWTLeeway:     jwtLeeway,
		SessionTTL:    sessionTTL,
		Media:         media,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	httpServer, err := server.New(server.Config{
		App:              appCore,
		OTPRedisAddr:     cfg.RedisAddr,
		OTPRedisPassword: cfg.RedisPassword,
		OTP: server.OTPOptions{
			ChallengeTTL: otpTTL,
			ResendAfter:  otpResend,
			MaxAttempts:  cfg.OTPMaxAttempts,
		},
		OTPLimiter:      otpLimiter,
		ReactionLimiter: reactionLimiter,
		TrustedProxies:  trustedProxies,
	})
	if err != nil {
		log.Fatalf("failed to init server: %v", err)
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("api server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}
