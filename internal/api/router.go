package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkwell/publishing-api/internal/api/handler"
	"github.com/inkwell/publishing-api/internal/api/middleware"
	"github.com/inkwell/publishing-api/internal/core/ports"
	"github.com/inkwell/publishing-api/internal/core/service"
	"github.com/inkwell/publishing-api/internal/infrastructure/config"
	mongorepo "github.com/inkwell/publishing-api/internal/infrastructure/db/mongo"
	"github.com/inkwell/publishing-api/internal/infrastructure/mail"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(client *mongo.Client, db *mongo.Database, images ports.ImageStore, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	blogRepo := mongorepo.NewBlogRepository(db)
	articleRepo := mongorepo.NewArticleRepository(db)
	interestRepo := mongorepo.NewInterestRepository(db)
	contactRepo := mongorepo.NewContactRepository(db)

	// --- Services ---
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.JWTRefreshSecret)
	mailer := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, log)

	authService := service.NewAuthService(userRepo, interestRepo, tokens, service.NewOTPManager(), mailer, log)
	blogService := service.NewBlogService(blogRepo, interestRepo, images, log)
	articleService := service.NewArticleService(articleRepo, interestRepo, images, log)
	interestService := service.NewInterestService(interestRepo)
	contactService := service.NewContactService(contactRepo)
	userService := service.NewUserService(userRepo, interestRepo, blogRepo, articleRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	blogHandler := handler.NewBlogHandler(blogService)
	articleHandler := handler.NewArticleHandler(articleService)
	interestHandler := handler.NewInterestHandler(interestService)
	contactHandler := handler.NewContactHandler(contactService)
	userHandler := handler.NewUserHandler(userService)
	adminHandler := handler.NewAdminHandler(userService)
	healthHandler := handler.NewHealthHandler(client)

	authRequired := middleware.Authenticate(tokens, userRepo)
	authOptional := middleware.OptionalAuthenticate(tokens, userRepo)
	adminOnly := middleware.AdminOnly()

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/verify-email", authHandler.VerifyEmail)
	auth.POST("/resend-otp", authHandler.ResendOTP)
	auth.POST("/login", authHandler.Login)
	auth.POST("/change-password", authHandler.ChangePassword, authRequired)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/verify-forgot-password-otp", authHandler.VerifyForgotPasswordOTP)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// --- Blog routes: reads are public, writes need a session ---
	blogs := e.Group("/api/blogs")
	blogs.GET("", blogHandler.List, authOptional)
	blogs.GET("/user/:userId", blogHandler.ListByUser)
	blogs.GET("/:id", blogHandler.Get)
	blogs.POST("", blogHandler.Create, authRequired)
	blogs.POST("/upload-image", blogHandler.UploadImage, authRequired)
	blogs.PUT("/:id", blogHandler.Update, authRequired)
	blogs.DELETE("/:id", blogHandler.Delete, authRequired)

	// --- Article routes ---
	articles := e.Group("/api/articles")
	articles.GET("", articleHandler.List, authOptional)
	articles.GET("/user/:userId", articleHandler.ListByUser)
	articles.GET("/:id", articleHandler.Get)
	articles.POST("", articleHandler.Create, authRequired)
	articles.PUT("/:id", articleHandler.Update, authRequired)
	articles.DELETE("/:id", articleHandler.Delete, authRequired)

	// --- Interest routes: reads are public, mutations are admin only ---
	interests := e.Group("/api/interests")
	interests.GET("", interestHandler.List)
	interests.GET("/:id", interestHandler.Get)
	interests.POST("", interestHandler.Create, authRequired, adminOnly)
	interests.PUT("/:id", interestHandler.Update, authRequired, adminOnly)
	interests.DELETE("/:id", interestHandler.Delete, authRequired, adminOnly)

	// --- Contact routes: anyone may submit, admins triage ---
	contacts := e.Group("/api/contacts")
	contacts.POST("", contactHandler.Create)
	contacts.GET("", contactHandler.List, authRequired, adminOnly)
	contacts.PATCH("/:id/status", contactHandler.UpdateStatus, authRequired, adminOnly)
	contacts.DELETE("/:id", contactHandler.Delete, authRequired, adminOnly)

	// --- Profile self-service ---
	users := e.Group("/api/users", authRequired)
	users.GET("/profile", userHandler.Profile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.POST("/change-password", authHandler.ChangePassword)
	users.DELETE("/me", userHandler.DeleteAccount)

	// --- Admin account management ---
	admin := e.Group("/api/admin", authRequired, adminOnly)
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Live)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Ready) // readiness – is the database up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
