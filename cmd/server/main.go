package main

import (
	"SmartDocs/internal/blob"
	"SmartDocs/internal/config"
	"SmartDocs/internal/handlers"
	"SmartDocs/internal/middleware"
	"SmartDocs/internal/repo"
	"SmartDocs/internal/service"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	sugar := logger.Sugar()
	middleware.SetLogger(sugar)
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	blobStore, err := blob.NewFileStore(cfg.UploadDir)
	if err != nil {
		sugar.Fatalw("failed to initialize blob store", "dir", cfg.UploadDir, "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	docRepo := repo.NewDocumentRepository(gormDB)
	grantRepo := repo.NewGrantRepository(gormDB)

	userService := service.NewUserService(userRepo)
	documentService := service.NewDocumentService(docRepo, grantRepo, userRepo, blobStore, sugar)

	h := handlers.NewHandler(userService, documentService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"UploadDir", cfg.UploadDir,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
