package main

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"note-network/config"
	"note-network/handlers"
	"note-network/helper"
	"note-network/middleware"
	"note-network/models"
	"note-network/notifier"
	"note-network/repositories"
	"note-network/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		log.Fatal(err)
	}

	httpHelper, err := helper.NewHTTPHelper()
	if err != nil {
		db.Close()
		log.Fatal(err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db.DB)
	vacancyRepo := repositories.NewVacancyRepository(db.DB)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.SecretKey)
	vacancyService := services.NewVacancyService(vacancyRepo, notifier.NewConsole())

	sessionMode := cfg.AuthMode == config.AuthModeSession

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, httpHelper, sessionMode)
	vacancyHandler := handlers.NewVacancyHandler(vacancyService, httpHelper)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", cfg.CORSOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// One authentication strategy, chosen at startup
	var authn gin.HandlerFunc
	if sessionMode {
		store := cookie.NewStore([]byte(cfg.SecretKey))
		router.Use(sessions.Sessions("note_network_session", store))
		authn = middleware.SessionAuth(authService)
	} else {
		authn = middleware.TokenAuth(authService)
	}

	router.GET("/", func(c *gin.Context) {
		httpHelper.SendSuccess(c, "Welcome to the Note Network API", httpHelper.EmptyJsonMap())
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	if sessionMode {
		router.POST("/logout", authn, authHandler.Logout)
	}

	router.GET("/profile", authn, authHandler.GetProfile)
	router.GET("/vacancies", vacancyHandler.GetVacancies)
	router.GET("/vacancy/:id", vacancyHandler.GetVacancy)

	router.POST("/post_vacancy", authn,
		middleware.RequireRole(models.RolePoster, "You are not authorized to post vacancies."),
		vacancyHandler.PostVacancy)
	router.POST("/connect/:vacancy_id", authn,
		middleware.RequireRole(models.RoleJobseeker, "You are not authorized to apply for vacancies."),
		vacancyHandler.Connect)

	router.NoRoute(func(c *gin.Context) {
		httpHelper.SendNotFoundError(c, "Resource not found", httpHelper.EmptyJsonMap())
	})

	// Start server
	log.Infof("Server starting on port %s in %s mode", cfg.Port, cfg.AuthMode)
	err = http.ListenAndServe(":"+cfg.Port, router)

	if closeErr := db.Close(); closeErr != nil {
		log.WithError(closeErr).Error("failed to close database")
	}
	log.Fatal(err)
}
