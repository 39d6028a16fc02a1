package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/hoshifest/backend/config"
	"github.com/hoshifest/backend/models"
	"github.com/hoshifest/backend/routes"
	"github.com/hoshifest/backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment variables directly")
	}

	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Game{},
		&models.GameSetting{},
		&models.GameResult{},
		&models.Update{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
