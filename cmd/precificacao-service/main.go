package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/meuprecocerto/precificacao/internal/auth"
	"github.com/meuprecocerto/precificacao/internal/config"
	"github.com/meuprecocerto/precificacao/internal/db"
	"github.com/meuprecocerto/precificacao/internal/events"
	"github.com/meuprecocerto/precificacao/internal/excel"
	httphandler "github.com/meuprecocerto/precificacao/internal/http"
	"github.com/meuprecocerto/precificacao/internal/http/middleware"
	"github.com/meuprecocerto/precificacao/internal/logger"
	"github.com/meuprecocerto/precificacao/internal/pdf"
	"github.com/meuprecocerto/precificacao/internal/pricing"
	"github.com/meuprecocerto/precificacao/internal/repository"
	"github.com/meuprecocerto/precificacao/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithLevel(cfg.Environment, cfg.LogLevel)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	batchRepo := repository.NewBatchRepository(database)
	catalogRepo := repository.NewCatalogRepository(database)
	recordRepo := repository.NewPricingRecordRepository(database)
	promotionRepo := repository.NewPromotionRepository(database)
	addressRepo := repository.NewAddressRepository(database)

	hub := events.NewHub(log, cfg.HTTP.CORSAllowedOrigins)
	hub.Subscribe(func(e events.Event) {
		log.Debug().Str("resource", e.Resource).Str("action", string(e.Action)).Msg("event published")
	})

	calc := pricing.NewCalculator(cfg.Pricing.Fees, cfg.Pricing.DefaultContractMonths)
	batchService := service.NewBatchService(batchRepo, calc, excel.NewGenerator(), pdf.NewGenerator(), hub, log)
	pricingService := service.NewPricingService(catalogRepo, recordRepo, calc, hub, log)
	promotionService := service.NewPromotionService(promotionRepo, catalogRepo, hub, log)
	addressService := service.NewAddressService(addressRepo, hub, log)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(httphandler.Services{
		Batches:    batchService,
		Pricing:    pricingService,
		Promotions: promotionService,
		Addresses:  addressService,
	}, hub, httphandler.Options{
		DefaultPageSize: cfg.List.DefaultPageSize,
		MaxPageSize:     cfg.List.MaxPageSize,
		MaxUploadBytes:  int64(cfg.Import.MaxUploadMB) << 20,
	}, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.HTTP.CORSAllowedOrigins, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting pricing service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
