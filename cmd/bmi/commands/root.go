package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"bmi-tracker/internal/client"
	"bmi-tracker/internal/view"
)

const defaultServer = "http://localhost:3001"

var (
	// Global flags
	serverURL string
	verbose   bool
	jsonOut   bool

	// Set up by the root PersistentPreRunE.
	logger *zap.Logger
	model  *view.Model
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bmi",
	Short: "BMI Tracker - record weight and height, follow your BMI",
	Long: `bmi is the terminal client for the BMI Tracker API.

It records measurements, lists and deletes past records, and draws the BMI
trend. Run "bmi tui" for the interactive tabbed interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	server := os.Getenv("BMI_SERVER")
	if server == "" {
		server = defaultServer
	}

	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", server, "BMI Tracker API base URL (env BMI_SERVER)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func setup() error {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	var err error
	logger, err = cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	api, err := client.New(serverURL)
	if err != nil {
		return err
	}

	model = view.New(api, logger)
	return nil
}
