package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"credit-score/domain"
	"credit-score/observability"
	"credit-score/repository"
	"credit-score/service"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a client described in a YAML file without a server",
	Long: `Score reads a client in the same shape as the POST /clients body,
written as YAML, and prints its score breakdown.

Example:
  creditscore score --file client.yaml --credit 30000000 --base 5000000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		credit, _ := cmd.Flags().GetInt64("credit")
		base, _ := cmd.Flags().GetInt64("base")
		at, _ := cmd.Flags().GetString("at")
		asJSON, _ := cmd.Flags().GetBool("json")

		if !cmd.Flags().Changed("credit") {
			credit = cfg.DefaultCreditAmount
		}
		if !cmd.Flags().Changed("base") {
			base = cfg.DefaultBaseAmount
		}

		now := time.Now()
		if at != "" {
			parsed, err := service.ParseTimestamp(at)
			if err != nil {
				return fmt.Errorf("--at: %w", err)
			}
			now = parsed
		}

		input, err := readClientFile(path)
		if err != nil {
			return err
		}

		b, err := scoreInput(cmd.Context(), input, credit, base, now)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(b)
		}
		return printBreakdown(cmd.OutOrStdout(), input.Name, b)
	},
}

func readClientFile(path string) (domain.ClientInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ClientInput{}, fmt.Errorf("failed to read client file: %w", err)
	}

	var input domain.ClientInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return domain.ClientInput{}, fmt.Errorf("failed to parse client file: %w", err)
	}
	return input, nil
}

// scoreInput runs the client through the same create and score path the
// API uses, backed by throwaway in-memory stores. Logs go to stderr so
// stdout only carries the result.
func scoreInput(ctx context.Context, input domain.ClientInput, credit, base int64, now time.Time) (domain.ScoreBreakdown, error) {
	svc := service.NewClientService(
		repository.NewClientRepositoryMemory(),
		repository.NewMemoryCache(),
		service.WithClock(func() time.Time { return now }),
		service.WithLogger(observability.NewLogger(os.Stderr, observability.LogConfig{
			Level:  cfg.LogLevel,
			Format: cfg.LogFormat,
		})),
	)

	client, err := svc.CreateClient(ctx, input)
	if err != nil {
		return domain.ScoreBreakdown{}, err
	}
	return svc.Score(ctx, client.ID, credit, base)
}

func printBreakdown(w io.Writer, name string, b domain.ScoreBreakdown) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Client\t%s\n", name)
	fmt.Fprintf(tw, "Engagement\t%d\n", b.Engagement)
	fmt.Fprintf(tw, "Savings\t%d\n", b.Savings)
	fmt.Fprintf(tw, "Salary\t%d\n", b.Salary)
	fmt.Fprintf(tw, "Debt recency\t%d\n", b.DebtRecency)
	fmt.Fprintf(tw, "Debt amount\t%d\n", b.DebtAmount)
	fmt.Fprintf(tw, "Score\t%d\n", b.Score)
	return tw.Flush()
}

func init() {
	scoreCmd.Flags().StringP("file", "f", "", "YAML file describing the client")
	scoreCmd.Flags().Int64("credit", service.DefaultCreditAmount, "requested credit amount")
	scoreCmd.Flags().Int64("base", service.DefaultBaseAmount, "required down payment")
	scoreCmd.Flags().String("at", "", "evaluate as of this ISO 8601 instant instead of now")
	scoreCmd.Flags().Bool("json", false, "print the breakdown as JSON")
	_ = scoreCmd.MarkFlagRequired("file")
}
