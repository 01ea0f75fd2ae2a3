package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/gainledger/src/config"
	"github.com/username/gainledger/src/database"
	"github.com/username/gainledger/src/handlers"
	"github.com/username/gainledger/src/logger"
	"github.com/username/gainledger/src/models"
	"github.com/username/gainledger/src/processors"
	"github.com/username/gainledger/src/security"
	"github.com/username/gainledger/src/services"
	"golang.org/x/time/rate"
)

var limiter *rate.Limiter

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			config.Cfg.FrontendBaseURL: true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Requested-With, Cookie, If-None-Match")
			w.Header().Set("Access-Control-Expose-Headers", "X-CSRF-Token, ETag")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			logger.L.Debug("Handling OPTIONS preflight request", "path", r.URL.Path, "origin", origin)
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func loadBrackets() []models.TaxBracket {
	if config.Cfg.TaxBracketsPath == "" {
		return processors.DefaultTaxBrackets()
	}
	brackets, err := processors.LoadTaxBrackets(config.Cfg.TaxBracketsPath)
	if err != nil {
		logger.L.Error("Failed to load tax brackets file, falling back to defaults",
			"path", config.Cfg.TaxBracketsPath, "error", err)
		return processors.DefaultTaxBrackets()
	}
	logger.L.Info("Tax brackets loaded from file", "path", config.Cfg.TaxBracketsPath, "tiers", len(brackets))
	return brackets
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("GainLedger backend server starting...")

	if config.Cfg.JWTSecret == "" || len(config.Cfg.JWTSecret) < 32 {
		logger.L.Error("JWT_SECRET configuration invalid. Must be at least 32 bytes.")
		os.Exit(1)
	}
	if len(config.Cfg.CSRFAuthKey) < 32 {
		logger.L.Error("CSRF_AUTH_KEY must be at least 32 bytes long.")
		os.Exit(1)
	}

	limiter = rate.NewLimiter(rate.Every(config.Cfg.RateLimitInterval), config.Cfg.RateLimitBurst)

	logger.L.Info("Initializing tax tier engine...")
	tiers, err := processors.NewTaxTierEngine(loadBrackets())
	if err != nil {
		logger.L.Error("Invalid tax bracket table", "error", err)
		os.Exit(1)
	}

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	logger.L.Info("Database initialized successfully.")

	logger.L.Info("Initializing report cache...")
	reportCache := cache.New(config.Cfg.SummaryCacheExpiration, config.Cfg.SummaryCacheCleanup)

	logger.L.Info("Initializing services and handlers...")
	authService := security.NewAuthService(config.Cfg.JWTSecret, config.Cfg.AccessTokenExpiry)
	emailService := services.NewEmailService()
	summaryService := services.NewSummaryService(tiers, reportCache, config.Cfg.SummaryCacheExpiration)

	userHandler := handlers.NewUserHandler(authService, emailService)
	txHandler := handlers.NewTransactionHandler(summaryService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)

	handlers.InitializeGoogleOAuthConfig()

	logger.L.Info("Configuring routes...")
	rootMux := http.NewServeMux()
	apiRouter := http.NewServeMux()

	// Public GET routes (no CSRF needed for these GETs)
	apiRouter.HandleFunc("GET /api/auth/csrf", handlers.GetCSRFToken(config.Cfg.CSRFAuthKey))
	apiRouter.HandleFunc("GET /api/auth/verify-email", userHandler.VerifyEmailHandler) // Token in query param
	apiRouter.HandleFunc("GET /api/auth/google/login", userHandler.HandleGoogleLogin)
	apiRouter.HandleFunc("GET /api/auth/google/callback", userHandler.HandleGoogleCallback)

	// Auth actions router - POST routes generally need CSRF
	authActionRouter := http.NewServeMux()
	authActionRouter.HandleFunc("POST /login", userHandler.LoginUserHandler)
	authActionRouter.HandleFunc("POST /register", userHandler.RegisterUserHandler)
	authActionRouter.HandleFunc("POST /refresh", userHandler.RefreshTokenHandler)
	authActionRouter.HandleFunc("POST /logout", userHandler.AuthMiddleware(userHandler.LogoutUserHandler))
	authActionRouter.HandleFunc("POST /request-password-reset", userHandler.RequestPasswordResetHandler)
	authActionRouter.HandleFunc("POST /reset-password", userHandler.ResetPasswordHandler)

	apiRouter.Handle("/api/auth/", http.StripPrefix("/api/auth", handlers.CSRFMiddleware(config.Cfg.CSRFAuthKey)(authActionRouter)))

	// CSRF and Auth middleware for protected API routes
	csrfProtection := handlers.CSRFMiddleware(config.Cfg.CSRFAuthKey)
	applyCsrfAndAuth := func(handler http.HandlerFunc) http.Handler {
		return csrfProtection(http.HandlerFunc(userHandler.AuthMiddleware(handler)))
	}

	apiRouter.Handle("GET /api/tax-summary", applyCsrfAndAuth(summaryHandler.HandleGetTaxSummary))
	apiRouter.Handle("GET /api/holdings", applyCsrfAndAuth(summaryHandler.HandleGetHoldings))
	apiRouter.Handle("GET /api/transactions", applyCsrfAndAuth(txHandler.HandleGetTransactions))
	apiRouter.Handle("POST /api/transactions", applyCsrfAndAuth(txHandler.HandleCreateTransaction))
	apiRouter.Handle("DELETE /api/transactions/all", applyCsrfAndAuth(txHandler.HandleDeleteAllTransactions))
	apiRouter.Handle("GET /api/user/has-data", applyCsrfAndAuth(userHandler.HandleCheckUserData))

	rootMux.Handle("/api/", apiRouter)

	rootMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"message": "GainLedger backend is running"})
		} else {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				logger.L.Warn("Root level path not found", "method", r.Method, "path", r.URL.Path)
				http.NotFound(w, r)
			}
		}
	})

	logger.L.Info("Applying global middleware...")
	finalHandler := enableCORS(rateLimitMiddleware(rootMux))

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      finalHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}
