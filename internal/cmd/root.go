package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "veicsys",
	Short: "VeícSys dealership and dispatch API",
	Long: `veicsys serves the role-gated dashboard views, the session endpoint,
service process tracking and the CNPJ lookup proxy.

Configuration is read from the environment (JWT_SECRET, MONGO_URI,
REDIS_ADDR, CNPJ_API_URL and friends).`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
