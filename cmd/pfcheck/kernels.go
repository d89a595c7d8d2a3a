package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MJE43/pf-crosscheck/internal/api"
	"github.com/MJE43/pf-crosscheck/internal/kernel"
	"github.com/MJE43/pf-crosscheck/internal/leaderboard"
	"github.com/MJE43/pf-crosscheck/internal/shim"
)

func newRankCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rank",
		Short: "Rank a JSON array of records by creditsMinor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return shim.Rank(a.stdin, a.stdout)
		},
	}
}

func newStandingsCmd(a *app) *cobra.Command {
	var table bool
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Rank records into typed leaderboard rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var records []leaderboard.Record
			if err := shim.Decode(a.stdin, &records); err != nil {
				return err
			}
			if records == nil {
				return kernel.Malformed("input", "expected a JSON array of records")
			}
			standings, err := leaderboard.Standings(records)
			if err != nil {
				return fmt.Errorf("standings: %w", err)
			}
			if !table {
				return shim.Encode(a.stdout, standings)
			}

			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RANK\tUSER\tCREDITS")
			for _, s := range standings {
				name := s.Username
				if name == "" {
					name = s.UserID
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Rank, name, leaderboard.FormatCredits(s.CreditsMinor))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&table, "table", false, "print a text table with credits instead of JSON")
	return cmd
}

func newDealCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deal",
		Short: "Deal two cards from a fresh deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rng, err := a.picker(cmd)
			if err != nil {
				return err
			}
			return shim.Deal(a.stdout, rng)
		},
	}
	a.addSeedFlags(cmd)
	return cmd
}

func newSliceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "slice",
		Short: "Map {stopRotationDeg, sliceCount} to {sliceIndex}",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return shim.Slice(a.stdin, a.stdout)
		},
	}
}

func newSpinCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spin",
		Short: "Spin the European roulette wheel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rng, err := a.picker(cmd)
			if err != nil {
				return err
			}
			return shim.Spin(a.stdout, rng)
		},
	}
	a.addSeedFlags(cmd)
	return cmd
}

func newPokerEngineCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poker-engine",
		Short: "Answer one poker engine action read from stdin",
		Long: `Reads {"action": ..., "deck": [...], "contenders": [...]} and writes the result.
Actions: build_deck, draw, deal, pick_winner.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rng, err := a.picker(cmd)
			if err != nil {
				return err
			}
			return shim.PokerEngine(a.stdin, a.stdout, rng)
		},
	}
	a.addSeedFlags(cmd)
	return cmd
}

func newKernelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kernels",
		Short: "List the available kernels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tINPUT\tOUTPUT")
			for _, k := range kernel.List() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", k.ID, k.Name, k.Input, k.Output)
			}
			return tw.Flush()
		},
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return shim.Encode(a.stdout, api.GetVersionInfo())
		},
	}
}
