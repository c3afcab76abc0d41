package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/mipimipi/libsearch/src/internal/server"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the libsearch service",
	Long:  "Run the libsearch service",
	Run: func(cmd *cobra.Command, args []string) {
		if err := server.Run(Version); err != nil {
			fmt.Printf("libsearch cannot be run: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
