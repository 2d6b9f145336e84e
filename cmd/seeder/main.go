package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/IN4XI4/xlo-server/internal/adapter"
	"github.com/IN4XI4/xlo-server/internal/config"
	"github.com/IN4XI4/xlo-server/internal/logger"
	"github.com/IN4XI4/xlo-server/internal/registry"
	"github.com/IN4XI4/xlo-server/internal/store"
	"github.com/IN4XI4/xlo-server/internal/store/schema"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSeederConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx := context.Background()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "seeder",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting catalog seeder", zap.String("catalog_path", cfg.CatalogPath))

	// Load and validate the catalog seed file before touching the database
	catalog, err := registry.LoadCatalog(adapter.NewFileSystem(), adapter.NewJSON(), cfg.CatalogPath)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load catalog file", zap.Error(err))
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Apply schema migrations
	if err := store.AutoMigrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}

	dataStore := store.NewPGStore(db)

	items := make([]schema.ItemCatalog, 0, len(catalog.Items()))
	for _, entry := range catalog.Items() {
		items = append(items, schema.ItemCatalog{
			Code:       entry.Code,
			Name:       entry.Name,
			Price:      entry.Price,
			ItemType:   entry.ItemType,
			AvatarType: entry.AvatarType,
			SVG:        entry.SVG,
			IsActive:   entry.IsActive,
			IsDefault:  entry.IsDefault,
			SortOrder:  entry.SortOrder,
		})
	}
	if err := dataStore.UpsertItemCatalog(ctx, items); err != nil {
		logger.FatalCtx(ctx, "Failed to upsert item catalog", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Upserted item catalog", zap.Int("count", len(items)))

	colors := make([]schema.ColorCatalog, 0, len(catalog.Colors()))
	for _, entry := range catalog.Colors() {
		colors = append(colors, schema.ColorCatalog{
			Code:      entry.Code,
			Name:      entry.Name,
			Price:     entry.Price,
			Hex:       entry.Hex,
			IsActive:  entry.IsActive,
			IsDefault: entry.IsDefault,
			SortOrder: entry.SortOrder,
		})
	}
	if err := dataStore.UpsertColorCatalog(ctx, colors); err != nil {
		logger.FatalCtx(ctx, "Failed to upsert color catalog", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Upserted color catalog", zap.Int("count", len(colors)))

	skinColors := make([]schema.SkinColorCatalog, 0, len(catalog.SkinColors()))
	for _, entry := range catalog.SkinColors() {
		skinColors = append(skinColors, schema.SkinColorCatalog{
			Code:        entry.Code,
			Name:        entry.Name,
			Price:       entry.Price,
			MainColor:   entry.MainColor,
			SecondColor: entry.SecondColor,
			IsActive:    entry.IsActive,
			IsDefault:   entry.IsDefault,
			SortOrder:   entry.SortOrder,
		})
	}
	if err := dataStore.UpsertSkinColorCatalog(ctx, skinColors); err != nil {
		logger.FatalCtx(ctx, "Failed to upsert skin color catalog", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Upserted skin color catalog", zap.Int("count", len(skinColors)))

	logger.InfoCtx(ctx, "Catalog seeding complete")
}
