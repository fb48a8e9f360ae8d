package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Lovely-Solutions-LLC/AppEvents/internal/board"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/config"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/countries"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/domain"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/handler"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/logger"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/mapper"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/monday"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/notifier"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/repository"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/repository/clickhouse"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/service"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/upsert"
)

func main() {
	// Local development convenience; in deployment the environment is real.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		_ = log.Sync()
	}(log)

	log.Info("Starting webhook service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort))

	ctx := context.Background()

	mondayClient := monday.NewClient(cfg.Monday, nil, log)

	protocol := upsert.NewProtocol(mondayClient, upsert.Config{
		PageSize:     cfg.Monday.PageSize,
		FindAttempts: cfg.Monday.FindAttempts,
		FindDelay:    cfg.Monday.FindRetryDelay,
	}, log)

	resolver := board.NewResolver(domain.DefaultBoardTargets)
	fieldMapper := mapper.NewMapper(countries.NewISOResolver())

	var notify notifier.Notifier = notifier.Noop{}
	if cfg.SMTP.Enabled() {
		notify = notifier.NewEmailNotifier(cfg.SMTP, log)
		log.Info("Email notifications enabled", zap.String("smtp_host", cfg.SMTP.Host))
	}

	var deliveries repository.DeliveryRepository
	if cfg.ClickHouse.Enabled() {
		clickhouseClient, err := clickhouse.NewClient(ctx, &cfg.ClickHouse, log)
		if err != nil {
			log.Fatal("Failed to create ClickHouse client", zap.Error(err))
		}
		repo := clickhouse.NewRepository(clickhouseClient, log)
		if err := repo.InitSchema(ctx); err != nil {
			log.Fatal("Failed to initialize delivery audit schema", zap.Error(err))
		}
		defer func() {
			if err := repo.Close(); err != nil {
				log.Error("Failed to close ClickHouse client", zap.Error(err))
			}
		}()
		deliveries = repo
		log.Info("Delivery audit trail enabled", zap.String("clickhouse_host", cfg.ClickHouse.Host))
	}

	lifecycleService := service.NewLifecycleService(fieldMapper, resolver, protocol, notify, deliveries, log)

	h := handler.NewHandler(lifecycleService, deliveries, log)

	addr := fmt.Sprintf(":%s", cfg.Service.APIPort)
	log.Info("API server starting", zap.String("address", addr))

	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal("Failed to start API server", zap.Error(err))
	}
}
