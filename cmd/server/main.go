package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vacancy-booking/internal/config"
	"github.com/iliyamo/vacancy-booking/internal/database"
	"github.com/iliyamo/vacancy-booking/internal/handler"
	"github.com/iliyamo/vacancy-booking/internal/middleware"
	"github.com/iliyamo/vacancy-booking/internal/queue"
	"github.com/iliyamo/vacancy-booking/internal/repository"
	"github.com/iliyamo/vacancy-booking/internal/router"
	"github.com/iliyamo/vacancy-booking/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	vacancyRepo := repository.NewVacancyRepo(db)
	reservationRepo := repository.NewReservationRepo(db)

	// Event publishing is best effort and only wired when the broker
	// integration is enabled.
	var publish service.PublishFunc
	if cfg.QueueEnabled {
		publish = func(ctx context.Context, ev queue.BookingConfirmedEvent) {
			_ = queue.PublishBookingConfirmed(ctx, ev)
		}
		go func() {
			if err := queue.StartBookingConsumer(); err != nil {
				log.Printf("booking-consumer stopped: %v", err)
			}
		}()
	}

	bookingSvc := service.NewBookingService(db, vacancyRepo, reservationRepo, publish)

	e := echo.New()

	// Redis is optional; when absent both the limiter and the cache
	// degrade to pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: rate limiting and response caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// The authorization gate: open by default, role-based when a JWT
	// secret is configured.
	var az middleware.Authorizer = middleware.AllowAll{}
	if cfg.JWTSecret != "" {
		az = middleware.RoleBased{Roles: map[string][]string{
			middleware.ActionViewReservations:   {"ADMIN", "CUSTOMER"},
			middleware.ActionCreateReservations: {"ADMIN", "CUSTOMER"},
		}}
	}

	router.RegisterRoutes(e)
	router.RegisterReservations(e, handler.NewReservationHandler(bookingSvc, cfg.PageSize), az, cfg.JWTSecret, cacheMW)
	router.RegisterAdmin(e, handler.NewVacancyHandler(vacancyRepo), cfg.AdminUser, cfg.AdminPassHash)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
