package app

import (
	"fmt"
	"strings"
	"time"

	"wayfare/pkg/storage"
	"wayfare/pkg/store"
)

const (
	defaultDailyQuestionLimit = 3
	defaultTopAnswerCount     = 3
	defaultSessionTTL         = 24 * time.Hour
)

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	JWTLeeway   time.Duration
	SessionTTL  time.Duration

	DailyQuestionLimit int
	TopAnswerCount     int

	Store    store.Store
	Sessions store.SessionStore
	Media    storage.ObjectStore
	Now      func() time.Time
}

// App wires storage, sessions and media behind the domain operations.
type App struct {
	store    store.Store
	sessions store.SessionStore
	media    storage.ObjectStore
	now      func() time.Time

	dailyQuestionLimit int
	topAnswerCount     int
}

// New constructs the application with database storage and session management.
func New(cfg Config) (*App, error) {
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.DailyQuestionLimit <= 0 {
		cfg.DailyQuestionLimit = defaultDailyQuestionLimit
	}
	if cfg.TopAnswerCount <= 0 {
		cfg.TopAnswerCount = defaultTopAnswerCount
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}

	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		var err error
		dataStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
	}

	sessionStore := cfg.Sessions
	if sessionStore == nil {
		if strings.TrimSpace(cfg.JWTSecret) == "" {
			return nil, fmt.Errorf("jwtSecret is required")
		}
		var revoker store.TokenRevoker
		if strings.TrimSpace(cfg.RedisAddr) != "" {
			revoker = store.NewRedisTokenRevoker(cfg.RedisAddr, cfg.RedisPassword)
		} else {
			revoker = store.NewMemoryTokenRevoker()
		}
		jwtStore, err := store.NewJWTSessionStoreWithOptions(cfg.JWTSecret, cfg.SessionTTL, revoker, store.JWTOptions{
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
			Leeway:   cfg.JWTLeeway,
		})
		if err != nil {
			return nil, fmt.Errorf("init jwt session store: %w", err)
		}
		sessionStore = jwtStore
	}

	return &App{
		store:              dataStore,
		sessions:           sessionStore,
		media:              cfg.Media,
		now:                cfg.Now,
		dailyQuestionLimit: cfg.DailyQuestionLimit,
		topAnswerCount:     cfg.TopAnswerCount,
	}, nil
}
