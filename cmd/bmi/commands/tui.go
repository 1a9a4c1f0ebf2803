package commands

import (
	"github.com/spf13/cobra"

	"bmi-tracker/cmd/bmi/tui"
)

// tuiCmd starts the interactive interface
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive interface with home, history and graph tabs",
	Long: `Start the interactive interface.

Keys:
  tab / shift+tab   switch between Home, History and Graph
  enter             save the measurement (Home)
  d                 delete the selected record after a y/n prompt (History)
  ctrl+c            quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(model)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
