package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskflow/core/cmd/api/commands"
)

// @title TaskFlow API
// @version 1.0
// @description Task management system with JWT authentication and dashboard statistics

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskflow",
		Short: "TaskFlow API Server",
		Long:  `TaskFlow is a task management system with JWT authentication, task lifecycle tracking, and dashboard statistics.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
