package main

import (
	"os"

	"github.com/lokeshrana9999/calor-ease-client/config"
	"github.com/lokeshrana9999/calor-ease-client/logger"
	"github.com/lokeshrana9999/calor-ease-client/routes"
)

func main() {
	logger.InitializeLogger()
	defer logger.Close()

	config.InitDB()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter()
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("server stopped: " + err.Error())
	}
}
