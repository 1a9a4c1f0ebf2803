package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bmi-tracker/cmd/bmi/output"
	"bmi-tracker/internal/view"
)

var (
	// Add flags
	weightText string
	heightText string

	// Delete flags
	assumeYes bool

	// Graph flags
	graphHeight int
)

// latestCmd prints the newest BMI
var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the most recent BMI",
	Long: `Show the BMI of the most recent record. Prints 0 when nothing has been
recorded yet.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := model.Refresh(cmd.Context()); err != nil {
			return err
		}
		latest := model.LatestBMI()
		if jsonOut {
			return writeJSON(cmd.OutOrStdout(), map[string]any{"bmi": latest})
		}
		fmt.Fprintln(cmd.OutOrStdout(), view.RenderHome(latest))
		return nil
	},
}

// listCmd prints the history table
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"history", "ls"},
	Short:   "List all records, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := model.Refresh(cmd.Context()); err != nil {
			return err
		}
		if jsonOut {
			return writeJSON(cmd.OutOrStdout(), model.Records())
		}
		fmt.Fprintln(cmd.OutOrStdout(), view.RenderTable(model.Records(), -1))
		return nil
	},
}

// addCmd records a measurement
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new measurement",
	Long: `Record a new measurement. The server computes the BMI and stamps today's date.

Examples:
  bmi add --weight 70 --height 175
  bmi add -w 82.5 -H 180`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := model.Save(cmd.Context(), weightText, heightText)
		if err != nil {
			return err
		}
		if jsonOut {
			return writeJSON(cmd.OutOrStdout(), rec)
		}
		output.Success(cmd.OutOrStdout(), "Saved record %d: BMI %s on %s", rec.RecordID, rec.BMI, rec.RecordDate)
		return nil
	},
}

// deleteCmd removes a record
var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a record",
	Long: `Delete a record by id. Asks for confirmation unless --yes is given.

Examples:
  bmi delete 12
  bmi delete 12 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("record id %q is not an integer", args[0])
		}

		out := cmd.OutOrStdout()
		if !assumeYes {
			ok, err := confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete record %d?", id))
			if err != nil {
				return err
			}
			if !ok {
				output.Muted(out, "Cancelled")
				return nil
			}
		}

		n, err := model.Delete(cmd.Context(), id)
		if err != nil {
			return err
		}
		if jsonOut {
			return writeJSON(out, map[string]int64{"changes": n})
		}
		if n == 0 {
			output.Warning(out, "No record with id %d", id)
			return nil
		}
		output.Success(out, "Deleted record %d", id)
		return nil
	},
}

// graphCmd draws the BMI trend
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Draw the BMI trend, oldest to newest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := model.Refresh(cmd.Context()); err != nil {
			return err
		}
		if jsonOut {
			return writeJSON(cmd.OutOrStdout(), model.Series())
		}
		output.Section(cmd.OutOrStdout(), "BMI trend")
		fmt.Fprintln(cmd.OutOrStdout(), view.RenderChart(model.Series(), graphHeight))
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&weightText, "weight", "w", "", "Weight in kilograms")
	addCmd.Flags().StringVarP(&heightText, "height", "H", "", "Height in centimetres")

	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")

	graphCmd.Flags().IntVar(&graphHeight, "rows", 10, "Chart height in terminal rows")

	rootCmd.AddCommand(latestCmd, listCmd, addCmd, deleteCmd, graphCmd)
}

// confirm asks a yes/no question and reads one line from in. Anything but
// y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
