package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/refdash/refdash/internal/calculation"
	"github.com/refdash/refdash/internal/config"
	"github.com/refdash/refdash/internal/output"
	"github.com/refdash/refdash/pkg/dateutil"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "refdash",
	Short: "Referral investment dashboard CLI",
	Long:  "Tracks personal investments and multi-generation referrals, computing cycle earnings, cascading commissions and dashboard metrics",
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard [portfolio-file]",
	Short: "Compute dashboard metrics for a portfolio",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		portfolio, err := parser.LoadFromFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		reference, err := referenceDate(cmd)
		if err != nil {
			log.Fatal(err)
		}

		topN, _ := cmd.Flags().GetInt("top")
		report := &output.Report{
			GeneratedAt:  reference,
			Metrics:      calculation.CalculateDashboardMetrics(portfolio.Referrals, portfolio.Investments, portfolio.Leads, reference),
			TopReferrals: calculation.TopReferrals(portfolio.Referrals, topN),
			Expiring:     calculation.ExpiringToday(portfolio.Referrals, portfolio.Investments, reference),
			Generations:  calculation.GenerationSummaries(portfolio.Referrals),
		}

		format, _ := cmd.Flags().GetString("format")
		formatter := output.GetFormatterByName(format)
		if formatter == nil {
			log.Fatalf("unsupported format: %s", format)
		}
		data, err := formatter.Format(report)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(string(data))
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "refdash %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// referenceDate resolves the --date flag. The wall clock is only read here,
// at the composition boundary; everything below takes the date explicitly.
func referenceDate(cmd *cobra.Command) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("date")
	if raw == "" {
		return time.Now(), nil
	}
	return dateutil.Parse(raw)
}

// initLogger builds the process logger from the app environment.
func initLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.Env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	dashboardCmd.Flags().String("format", "console", "Output format (console, json, csv)")
	dashboardCmd.Flags().Int("top", 5, "Number of top referrals to include")
	dashboardCmd.Flags().String("date", "", "Reference date (YYYY-MM-DD, default today)")

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(referralIncomeCmd())
	rootCmd.AddCommand(tuiCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
