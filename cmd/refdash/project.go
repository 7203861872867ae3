package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/refdash/refdash/internal/calculation"
	"github.com/refdash/refdash/internal/config"
	"github.com/refdash/refdash/internal/domain"
	"github.com/refdash/refdash/internal/output"
)

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [amount] [cycles]",
		Short: "Project compounding personal income over N cycles",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				log.Fatalf("invalid amount %q: %v", args[0], err)
			}
			cycles, err := strconv.Atoi(args[1])
			if err != nil {
				log.Fatalf("invalid cycle count %q: %v", args[1], err)
			}

			engine, err := engineFromFlags(cmd)
			if err != nil {
				log.Fatal(err)
			}

			projection := engine.ProjectPersonal(amount, cycles)
			fmt.Print(output.FormatPersonalProjection(projection))
		},
	}
	cmd.Flags().String("rate", "", "Override cycle earnings rate (e.g. 0.24)")
	cmd.Flags().String("portfolio", "", "Portfolio file supplying rate configuration")
	return cmd
}

func referralIncomeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "referral-income",
		Short: "Project periodic income from referral groups",
		Long:  "Each --group takes generation:amount:count, e.g. --group 1:15000:5",
		Run: func(cmd *cobra.Command, args []string) {
			raw, _ := cmd.Flags().GetStringArray("group")
			if len(raw) == 0 {
				log.Fatal("at least one --group is required")
			}

			groups := make([]domain.ReferralGroupInput, 0, len(raw))
			for _, spec := range raw {
				group, err := parseGroup(spec)
				if err != nil {
					log.Fatal(err)
				}
				groups = append(groups, group)
			}

			engine, err := engineFromFlags(cmd)
			if err != nil {
				log.Fatal(err)
			}

			projection := engine.ProjectReferrals(groups)
			fmt.Print(output.FormatReferralProjection(projection))
		},
	}
	cmd.Flags().StringArray("group", nil, "Referral group as generation:amount:count (repeatable)")
	cmd.Flags().String("rate", "", "Override cycle earnings rate (e.g. 0.24)")
	cmd.Flags().String("portfolio", "", "Portfolio file supplying rate configuration")
	return cmd
}

// engineFromFlags builds a calculation engine from the optional --portfolio
// and --rate flags, falling back to the reference configuration.
func engineFromFlags(cmd *cobra.Command) (*calculation.Engine, error) {
	engine := calculation.NewEngine()

	if path, _ := cmd.Flags().GetString("portfolio"); path != "" {
		portfolio, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		engine = portfolio.Engine()
	}

	if raw, _ := cmd.Flags().GetString("rate"); raw != "" {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid rate %q: %w", raw, err)
		}
		engine.Cycle.EarningsRate = rate
	}

	return engine, nil
}

// parseGroup parses a generation:amount:count group specification.
func parseGroup(spec string) (domain.ReferralGroupInput, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return domain.ReferralGroupInput{}, fmt.Errorf("invalid group %q (want generation:amount:count)", spec)
	}

	generation, err := strconv.Atoi(parts[0])
	if err != nil {
		return domain.ReferralGroupInput{}, fmt.Errorf("invalid generation in group %q: %w", spec, err)
	}
	amount, err := decimal.NewFromString(parts[1])
	if err != nil {
		return domain.ReferralGroupInput{}, fmt.Errorf("invalid amount in group %q: %w", spec, err)
	}
	count, err := strconv.Atoi(parts[2])
	if err != nil {
		return domain.ReferralGroupInput{}, fmt.Errorf("invalid count in group %q: %w", spec, err)
	}

	return domain.ReferralGroupInput{
		Generation:        generation,
		AmountPerReferral: amount,
		Count:             count,
	}, nil
}
