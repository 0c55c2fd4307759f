package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"radioplayer/internal/config"
	"radioplayer/internal/database"
	"radioplayer/internal/middleware"
	"radioplayer/internal/modules/auth"
	"radioplayer/internal/modules/directory"
	"radioplayer/internal/modules/pages"
	"radioplayer/internal/modules/station"
	jwtsvc "radioplayer/internal/pkg/jwt"
	"radioplayer/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	stationRepo := repository.NewStationRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	recentRepo := repository.NewRecentlyPlayedRepository(db)

	j := jwtsvc.New(cfg.SessionSecret, cfg.SessionTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Secure:   cfg.CookieSecure,
		SameSite: sameSiteFromConfig(cfg.CookieSameSite),
		TTL:      cfg.SessionTTL,
	})

	stationService := station.NewService(stationRepo, favoriteRepo, recentRepo)
	stationHandler := station.NewHandler(stationService)

	directoryClient := directory.NewClient(cfg.DirectoryBaseURL, cfg.DirectoryTimeout)
	directoryHandler := directory.NewHandler(directoryClient)

	pagesHandler := pages.NewHandler(authService)

	if _, err := stationService.EnsureDemoStation(context.Background()); err != nil {
		log.Fatal("demo station seed failed:", err)
	}

	r := gin.Default()
	r.SetHTMLTemplate(pages.Templates())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CurrentUser(j))

	pagesHandler.RegisterRoutes(r)
	authHandler.RegisterRoutes(r)

	api := r.Group("/api")
	{
		directoryHandler.RegisterRoutes(api)

		protected := api.Group("/")
		protected.Use(middleware.RequireAuth())

		stationHandler.RegisterRoutes(api, protected)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Endpoint not found"})
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func sameSiteFromConfig(v string) http.SameSite {
	switch v {
	case "None", "none":
		return http.SameSiteNoneMode
	case "Strict", "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}
