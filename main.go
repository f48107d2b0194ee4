package main

import (
	"context"
	"log"
	"time"

	"event_rsvp/clock"
	"event_rsvp/config"
	"event_rsvp/constants"
	"event_rsvp/database"
	"event_rsvp/handler"
	"event_rsvp/locker"
	"event_rsvp/model"
	"event_rsvp/router"
	"event_rsvp/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
)

type store interface {
	service.EventRepository
	service.GuestRepository
	service.AccountRepository
	database.AccountStore
}

func main() {
	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigOr("CORS_ORIGINS", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		MaxAge:           600,
	}))

	repo := openStore()
	ctx := context.Background()
	if err := database.SeedData(ctx, repo, config.Config("ADMIN_USERNAME"), config.Config("ADMIN_PASSWORD")); err != nil {
		log.Fatalf("seed data: %v", err)
	}

	secret := []byte(config.Config("JWT_SECRET"))
	if len(secret) == 0 {
		log.Fatal("JWT_SECRET is not set")
	}

	clk := clock.NewSystem()
	guests := service.NewGuestService(repo, openLocker(ctx), clk)
	guests.OnGuestCreated(func(_ context.Context, actor model.Actor, event model.Event, guest model.Guest) {
		log.Printf("guest %d reserved %d seat(s) for event %d (%s), anonymous=%t", guest.ID, guest.NumberOfSeats, event.ID, event.Slug, actor.Anonymous)
	})
	h := handler.New(
		service.NewEventService(repo, clk),
		guests,
		service.NewAuthService(repo, secret, clk),
	)
	router.SetupRoutes(app, h, secret)

	log.Fatal(app.Listen(":" + config.ConfigOr("PORT", "8002")))
}

func openStore() store {
	if config.ConfigOr("DB_DRIVER", constants.DRIVER_POSTGRES) == constants.DRIVER_MEMORY {
		log.Println("using in-memory store, data is lost on restart")
		return database.NewMemory()
	}
	db, err := database.ConnectDB()
	if err != nil {
		log.Fatal(err)
	}
	return database.NewRepository(db)
}

// openLocker serializes reservations across instances through Redis when
// REDIS_ADDR is set, and within this process otherwise.
func openLocker(ctx context.Context) locker.Locker {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		return locker.NewLocal()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.Config("REDIS_PASSWORD"),
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("connect redis: %v", err)
	}
	log.Println("Connection Opened to Redis")
	return locker.NewRedis(client, 0)
}
