package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:           "pickup-notifier",
		Short:         "Pickup reminder dispatch for bakery orders",
		Long:          "pickup-notifier schedules day-before and same-day pickup reminders for orders and delivers them as in-app and push notifications.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configDir, "config", "./config", "directory containing config.yml")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newServeCmd(&configDir))
	cmd.AddCommand(newScheduleCmd(&configDir))
	cmd.AddCommand(newCancelCmd(&configDir))
	cmd.AddCommand(newDispatchCmd(&configDir))
	cmd.AddCommand(newTestPushCmd(&configDir))
	cmd.AddCommand(newEmitCmd(&configDir))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
