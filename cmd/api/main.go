package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskdesk/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskdesk",
		Short: "TaskDesk API Server",
		Long:  `TaskDesk is a task management service with categories, priority-aware ordering, dashboard statistics and bulk operations.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
