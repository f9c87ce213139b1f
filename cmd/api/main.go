package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/freelanceflow/backend/internal/config"
	"github.com/freelanceflow/backend/internal/db"
	"github.com/freelanceflow/backend/internal/handlers"
	"github.com/freelanceflow/backend/internal/middleware"
	"github.com/freelanceflow/backend/internal/notify"
	"github.com/freelanceflow/backend/internal/services/payments"
	"github.com/freelanceflow/backend/internal/services/projects"
	"github.com/freelanceflow/backend/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN, logger)
	if err != nil {
		logger.Fatal("database unavailable", zap.Error(err))
	}

	st := store.New(gdb)
	if err := st.Migrate(); err != nil {
		logger.Fatal("schema migration failed", zap.Error(err))
	}

	// Notifications always land in the store; Redis mirroring is only
	// wired when an address is configured. Sink failures never fail a
	// workflow operation.
	sinks := notify.Multi{notify.NewStoreSink(st)}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis unavailable, events stay store-only", zap.Error(err))
		} else {
			sinks = append(sinks, notify.NewRedisSink(rdb))
		}
	}

	paymentSvc := payments.New(st, sinks, logger)
	projectSvc := projects.New(st, logger)

	authH := &handlers.AuthHandler{
		Store:     st,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	paymentH := handlers.NewPaymentHandler(paymentSvc)
	projectH := handlers.NewProjectHandler(projectSvc)
	notifH := handlers.NewNotificationHandler(st)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://127.0.0.1:3000, http://localhost:3000",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)

	// protected (JWT from cookie)
	protected := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	// projects & bids
	protected.Post("/projects", middleware.RequireRoles("client", "admin"), projectH.Create)
	protected.Get("/projects", projectH.List)
	protected.Get("/projects/:id", projectH.Get)
	protected.Patch("/projects/:id/status", projectH.ChangeStatus)
	protected.Get("/projects/:id/history", projectH.History)
	protected.Delete("/projects/:id", middleware.RequireRoles("admin"), projectH.Delete)
	protected.Post("/projects/:id/bids", middleware.RequireRoles("freelancer"), projectH.PlaceBid)
	protected.Get("/bids", projectH.ListBids)
	protected.Patch("/bids/:id/status", middleware.RequireRoles("client", "admin"), projectH.DecideBid)

	// milestones & escrow
	protected.Post("/milestones", middleware.RequireRoles("client", "admin"), paymentH.CreateMilestone)
	protected.Get("/milestones", paymentH.ListMilestones)
	protected.Post("/milestones/:id/release", middleware.RequireRoles("client", "admin"), paymentH.ReleaseMilestone)
	protected.Post("/milestones/:id/dispute", paymentH.DisputeMilestone)
	protected.Get("/escrow", paymentH.ListEscrow)
	protected.Post("/escrow/:id/release", middleware.RequireRoles("client", "admin"), paymentH.ReleaseEscrow)
	protected.Post("/escrow/:id/hold", middleware.RequireRoles("admin"), paymentH.HoldEscrow)
	protected.Post("/escrow/:id/refund", middleware.RequireRoles("admin"), paymentH.RefundEscrow)

	// invoices
	protected.Post("/invoices", paymentH.GenerateInvoice)
	protected.Get("/invoices", paymentH.ListInvoices)
	protected.Post("/invoices/:id/send", paymentH.SendInvoice)

	// disputes
	protected.Get("/disputes", paymentH.ListDisputes)
	protected.Post("/disputes/:id/resolve", middleware.RequireRoles("admin"), paymentH.ResolveDispute)
	protected.Post("/disputes/:id/escalate", paymentH.EscalateDispute)
	protected.Post("/disputes/:id/mediate", middleware.RequireRoles("admin"), paymentH.MediateDispute)

	// dashboard & notifications
	protected.Get("/dashboard", paymentH.Dashboard)
	protected.Get("/notifications", notifH.List)

	logger.Info("listening", zap.String("port", cfg.AppPort))
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
