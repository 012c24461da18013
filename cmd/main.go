package main

import (
	"os"

	"healthycore/config"
	"healthycore/routes"
	"healthycore/utils"
)

func main() {
	db := config.InitDB()
	utils.InitS3()
	utils.InitMailer()

	r := routes.SetupRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
