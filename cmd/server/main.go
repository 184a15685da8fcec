package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"
)

// @title Gymbuddy API
// @version 1.0
// @description API for generating workouts, tracking weekly progress, and working out with partners.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Errorln(err)
		os.Exit(1)
	}
}
