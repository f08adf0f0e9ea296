// @title First Aid Training API
// @version 1.0
// @description Quizzes, scenario exercises, achievements and leaderboard for the first-aid training platform.

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"firstaid_backend/internal/cli"
	"os"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
