package cli

import (
	"context"

	"github.com/mobile-next/adbrobot/commands"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run system diagnostics",
	Long:  `Performs system diagnostics for better troubleshooting`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.DoctorCommand(ctx, GetVersion())
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
