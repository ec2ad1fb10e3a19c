package main

import (
	"net/http"
	"os"
	"time"

	"github.com/adzibilal/kondanginbackend/config"
	"github.com/adzibilal/kondanginbackend/database"
	"github.com/adzibilal/kondanginbackend/handlers"
	"github.com/adzibilal/kondanginbackend/repository"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("no .env file found, using environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	if err := database.AutoMigrateModels(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to get underlying sql.DB")
	}

	guestRepo := repository.NewGormGuestRepository(db)
	rsvpRepo := repository.NewGormRSVPRepository(db)
	wishRepo := repository.NewGormWishRepository(db)
	settingRepo := repository.NewGormSettingRepository(db)

	authHandler, err := handlers.NewAuthHandler(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize auth")
	}
	adminGuestHandler := handlers.NewAdminGuestHandler(guestRepo, settingRepo, cfg.BaseURL, logger)
	publicGuestHandler := handlers.NewPublicGuestHandler(guestRepo, logger)
	rsvpHandler := handlers.NewRSVPHandler(rsvpRepo, guestRepo, logger)
	wishHandler := handlers.NewWishHandler(wishRepo, guestRepo, logger)
	uploadHandler := handlers.NewUploadHandler(cfg, logger)
	settingsHandler := handlers.NewAdminSettingsHandler(settingRepo, logger)
	dashboardHandler := handlers.NewDashboardHandler(sqlDB, logger)
	galleryHandler := handlers.NewGalleryHandler(cfg.GalleryPath, logger)

	r := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handlers.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})

		// public invitation surface
		r.Route("/guests", func(r chi.Router) {
			r.Get("/resolve", publicGuestHandler.ResolveToken)
			r.Get("/{slug}", publicGuestHandler.GetGuestBySlug)
		})
		r.Get("/rsvp", rsvpHandler.CheckExisting)
		r.Post("/rsvp", rsvpHandler.Submit)
		r.Get("/wishes", wishHandler.ListWishes)
		r.Post("/wishes", wishHandler.Submit)
		r.Post("/upload-audio", uploadHandler.UploadAudio)
		r.Get("/gallery", galleryHandler.ListImages)
		r.Get(handlers.GalleryRoutePrefix+"*", handlers.AssetServer(cfg.GalleryPath, handlers.GalleryRoutePrefix, logger))

		// admin surface, gated by the session cookie
		r.Route("/admin", func(r chi.Router) {
			r.Use(authHandler.RequireAuth)

			r.Route("/guests", func(r chi.Router) {
				r.Get("/", adminGuestHandler.ListGuests)
				r.Post("/", adminGuestHandler.CreateGuest)
				r.Post("/import", adminGuestHandler.ImportGuests)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", adminGuestHandler.GetGuest)
					r.Put("/", adminGuestHandler.UpdateGuest)
					r.Delete("/", adminGuestHandler.DeleteGuest)
				})
			})

			r.Get("/rsvp", rsvpHandler.ListRSVPs)
			r.Delete("/rsvp", rsvpHandler.DeleteRSVP)
			r.Get("/wishes", wishHandler.ListWishesAdmin)
			r.Delete("/wishes", wishHandler.DeleteWish)

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", settingsHandler.ListSettings)
				r.Post("/", settingsHandler.UpsertSetting)
				r.Get("/{key}", settingsHandler.GetSetting)
			})

			r.Get("/dashboard", dashboardHandler.GetStats)
		})
	})

	serverAddr := ":" + cfg.Port
	logger.Info().Str("addr", serverAddr).Str("database", cfg.DatabasePath).Msg("server starting")
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
