package main // API server entry point

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/renteaselabs/rentease-backend/internal/config"
	"github.com/renteaselabs/rentease-backend/internal/database"
	"github.com/renteaselabs/rentease-backend/internal/handler"
	"github.com/renteaselabs/rentease-backend/internal/middleware"
	"github.com/renteaselabs/rentease-backend/internal/queue"
	"github.com/renteaselabs/rentease-backend/internal/repository"
	"github.com/renteaselabs/rentease-backend/internal/revocation"
	"github.com/renteaselabs/rentease-backend/internal/router"
	queue_publisher "github.com/renteaselabs/rentease-backend/internal/service"
)

func main() {
	// .env is a dev convenience; in prod the environment is already set.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Redis is optional: without it the revocation set falls back to the
	// in-process implementation and caching/rate limiting are disabled.
	rdb := config.NewRedisClient()
	var revoked revocation.Set
	if rdb != nil {
		revoked = revocation.NewRedisSet(rdb)
	} else {
		log.Printf("redis unavailable, using in-memory revocation set")
		revoked = revocation.NewMemorySet()
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	properties := repository.NewPropertyRepo(db)
	favorites := repository.NewFavoriteRepo(db)
	inquiries := repository.NewInquiryRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens, revoked)
	publicH := handler.NewPublicHandler(properties)
	agentH := handler.NewAgentHandler(properties, inquiries)
	customerH := handler.NewCustomerHandler(properties, favorites, inquiries,
		func(ctx context.Context, inq repository.Inquiry) {
			// Best-effort: the publisher logs its own failures.
			_ = queue_publisher.PublishInquiryCreated(ctx, queue.InquiryCreatedEvent{
				InquiryID:  inq.ID,
				UserID:     inq.UserID,
				PropertyID: inq.PropertyID,
				Message:    inq.Message,
				CreatedAt:  inq.CreatedAt.UTC().Format(time.RFC3339),
			})
		})
	adminH := handler.NewAdminHandler(users, properties, favorites, inquiries, tokens)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, revoked)
	router.RegisterPublic(e, publicH, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterCustomer(e, customerH, cfg.JWTSecret, revoked)
	router.RegisterAgent(e, agentH, cfg.JWTSecret, revoked)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret, revoked)

	// Background consumer for inquiry events; reconnects on its own.
	go func() {
		if err := queue.StartInquiryConsumer(); err != nil {
			log.Printf("inquiry consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
