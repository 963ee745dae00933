package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/avilkin/blog-service/internal/auth"
	"github.com/avilkin/blog-service/internal/config"
	"github.com/avilkin/blog-service/internal/handler"
	"github.com/avilkin/blog-service/internal/janitor"
	"github.com/avilkin/blog-service/internal/middleware"
	"github.com/avilkin/blog-service/internal/oauth"
	"github.com/avilkin/blog-service/internal/repository"
	"github.com/avilkin/blog-service/internal/service"
	"github.com/avilkin/blog-service/internal/uploads"
	"github.com/avilkin/blog-service/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)

	tokens, err := auth.NewService(cfg.JWTSecret)
	if err != nil {
		logger.Fatalf("Failed to initialize token service: %v", err)
	}

	var mailer service.Mailer
	if cfg.EmailVerificationEnabled() {
		mailer = email.NewSender(cfg, logger)
		logger.Info("Email verification enabled")
	}

	var verifier service.GoogleVerifier
	if cfg.GoogleLoginEnabled() {
		verifier = oauth.NewGoogleVerifier(cfg.GoogleClientID)
		logger.Info("Google login enabled")
	}

	uploadStore, err := uploads.NewStore(cfg.UploadDir)
	if err != nil {
		logger.Fatalf("Failed to initialize upload store: %v", err)
	}

	svc := service.NewService(repo, repo, repo, tokens, mailer, verifier, logger, cfg)
	h := handler.NewHandler(svc, uploadStore, logger, cfg)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))

	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/logout", h.Logout).Methods("POST")
	r.HandleFunc("/post", h.ListPosts).Methods("GET")
	r.HandleFunc("/post/{id:[0-9]+}", h.GetPost).Methods("GET")
	r.HandleFunc("/contact", h.SubmitContact).Methods("POST")
	r.HandleFunc("/contact", h.DeleteContact).Methods("DELETE")
	r.HandleFunc("/feed", h.Feed).Methods("GET")
	if cfg.EmailVerificationEnabled() {
		r.HandleFunc("/verify", h.Verify).Methods("GET")
	}
	if cfg.GoogleLoginEnabled() {
		r.HandleFunc("/google-login", h.GoogleLogin).Methods("POST")
	}

	// Uploaded covers
	r.PathPrefix(uploads.PublicPrefix).Handler(
		http.StripPrefix(uploads.PublicPrefix, http.FileServer(http.Dir(uploadStore.Dir()))))

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.Auth(tokens))
	authRouter.HandleFunc("/profile", h.Profile).Methods("GET")
	authRouter.HandleFunc("/post", h.CreatePost).Methods("POST")
	authRouter.HandleFunc("/post", h.UpdatePost).Methods("PUT")

	// Purge accounts that never followed their verification link
	if cfg.EmailVerificationEnabled() {
		j := janitor.New(repo, cfg.UnverifiedTTL, logger)
		if err := j.Start(); err != nil {
			logger.Fatalf("Failed to start janitor: %v", err)
		}
		defer j.Stop()
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	// CORS wraps the router itself so browser preflights are answered even
	// though every route declares explicit methods.
	server := &http.Server{
		Addr:         addr,
		Handler:      middleware.CORS(cfg.CORSOrigin)(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
