package main

import (
	"context"
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/hearthplan/household-calendar-api/internal/config"
	"github.com/hearthplan/household-calendar-api/internal/constants"
	"github.com/hearthplan/household-calendar-api/internal/database"
	"github.com/hearthplan/household-calendar-api/internal/handlers"
	"github.com/hearthplan/household-calendar-api/internal/middleware"
	"github.com/hearthplan/household-calendar-api/internal/push"
	"github.com/hearthplan/household-calendar-api/internal/queue"
	"github.com/hearthplan/household-calendar-api/internal/repository"
	"github.com/hearthplan/household-calendar-api/internal/services"
	"github.com/robfig/cron/v3"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	householdRepo := repository.NewHouseholdRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	eventRepo := repository.NewEventRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	subscriptionRepo := repository.NewPushSubscriptionRepository(db)

	// Services
	authService := services.NewAuthService(userRepo)
	householdService := services.NewHouseholdService(householdRepo, userRepo)
	eventService := services.NewEventService(eventRepo, calendarRepo, userRepo)
	subscriptionService := services.NewPushSubscriptionService(subscriptionRepo)

	sender := push.NewWebPushSender(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.VAPIDSubscriber)
	notificationService := services.NewNotificationService(notificationRepo, subscriptionRepo, sender)

	ctx := context.Background()

	// With a broker configured, dispatch enqueues tasks and this
	// process also consumes them; without one, dispatch delivers
	// inline.
	if cfg.AMQPURL != "" {
		notificationService.UseQueue(queue.NewAMQPEnqueuer(cfg.AMQPURL))
		go func() {
			if err := queue.StartDeliveryConsumer(ctx, cfg.AMQPURL, notificationService.Deliver); err != nil {
				log.Printf("Delivery consumer stopped: %v", err)
			}
		}()
	}

	// Optional in-process dispatcher schedule; calctl covers external
	// scheduling when this is unset.
	if cfg.DispatchCron != "" {
		scheduler := cron.New()
		_, err := scheduler.AddFunc(cfg.DispatchCron, func() {
			count, err := notificationService.Dispatch(ctx)
			if err != nil {
				log.Printf("Notification dispatch failed: %v", err)
				return
			}
			log.Printf("Dispatched %d reminders", count)
		})
		if err != nil {
			log.Fatalf("Invalid DISPATCH_CRON %q: %v", cfg.DispatchCron, err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Initialize Gin router
	r := gin.Default()
	r.Use(middleware.RequestID())

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	householdHandler := handlers.NewHouseholdHandler(householdService)
	eventHandler := handlers.NewEventHandler(eventService, authService)
	subscriptionHandler := handlers.NewPushSubscriptionHandler(subscriptionService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Household Calendar API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Household routes (protected)
		households := api.Group("/households")
		households.Use(middleware.RequireAuth())
		{
			households.GET("/current", householdHandler.Current)
			households.POST("/join", householdHandler.Join)
			households.POST("/:id/regenerate-code", householdHandler.RegenerateInviteCode)
		}

		// Calendar view + event routes (protected)
		api.GET("/calendar", middleware.RequireAuth(), eventHandler.CalendarView)

		events := api.Group("/events")
		events.Use(middleware.RequireAuth())
		{
			events.POST("", eventHandler.CreateEvent)
			events.PUT("/:id", eventHandler.UpdateEvent)
			events.DELETE("/:id", eventHandler.DeleteEvent)
		}

		// Push subscription routes (protected)
		subscriptions := api.Group("/push-subscriptions")
		subscriptions.Use(middleware.RequireAuth())
		{
			subscriptions.POST("", subscriptionHandler.Register)
			subscriptions.DELETE("", subscriptionHandler.Unregister)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
