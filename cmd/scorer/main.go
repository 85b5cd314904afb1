// Command scorer prints bballscorer reports in the terminal.
//
// Usage:
//
//	scorer matchup BOS LAL --season 2024 --last-n 10 --home-away 8 --h2h 6
//	scorer h2h BOS LAL --season 2024 --last-n 6 --seasons-back 5
//	scorer player "Jayson Tatum" --line pts=26 --line reb=7.5 --period 1
//	scorer players tatum
//	scorer scan --stat pts --line 20 --min-hit-rate 0.7 --min-games 8
//	scorer next BOS
//
// Every tabular command accepts --csv to write CSV to stdout instead of an
// aligned text table.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/bballscorer/internal/catalog"
	"github.com/albapepper/bballscorer/internal/config"
	"github.com/albapepper/bballscorer/internal/export"
	"github.com/albapepper/bballscorer/internal/provider/nbastats"
	"github.com/albapepper/bballscorer/internal/report"
	"github.com/albapepper/bballscorer/internal/stats"
)

// Logs go to stderr so stdout stays clean for tables and CSV.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "scorer",
		Short:        "NBA matchup and prop-line reports",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&csvOutput, "csv", false, "Write CSV to stdout instead of a text table")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log upstream activity to stderr")

	root.AddCommand(matchupCmd())
	root.AddCommand(h2hCmd())
	root.AddCommand(playerCmd())
	root.AddCommand(playersCmd())
	root.AddCommand(scanCmd())
	root.AddCommand(nextCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	csvOutput bool
	verbose   bool
)

// --------------------------------------------------------------------------
// matchup command
// --------------------------------------------------------------------------

func matchupCmd() *cobra.Command {
	var season, lastN, homeAway, h2h int
	cmd := &cobra.Command{
		Use:   "matchup HOME AWAY",
		Short: "Compare two teams' recent form",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(func(ctx context.Context, b *report.Builder) error {
				rep, err := b.TeamMatchup(ctx, report.MatchupRequest{
					Home:          args[0],
					Away:          args[1],
					Season:        season,
					LastN:         lastN,
					LastNHomeAway: homeAway,
					LastNH2H:      h2h,
				})
				if err != nil {
					return err
				}
				if rep == nil {
					return fmt.Errorf("no matchup data for %s vs %s", args[0], args[1])
				}
				return emit(cmd.OutOrStdout(), export.MatchupTable(rep), matchupHeadline(rep))
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season start year (default CURRENT_SEASON)")
	cmd.Flags().IntVar(&lastN, "last-n", report.DefaultLastN, "Overall window")
	cmd.Flags().IntVar(&homeAway, "home-away", report.DefaultLastNHomeAway, "Home/away window")
	cmd.Flags().IntVar(&h2h, "h2h", report.DefaultLastNH2H, "In-season head-to-head window")
	return cmd
}

func matchupHeadline(rep *report.MatchupReport) []string {
	s := rep.Summary
	lines := []string{
		fmt.Sprintf("%s vs %s, %s: last %d games (%s %d, %s %d), home/away last %d (%s %d at home, %s %d on the road)",
			s.Home.Abbreviation, s.Away.Abbreviation, s.Season, s.LastN,
			s.Home.Abbreviation, s.HomeGames, s.Away.Abbreviation, s.AwayGames,
			s.LastNHomeAway, s.Home.Abbreviation, s.HomeVenueGames, s.Away.Abbreviation, s.AwayVenueGames),
	}
	if s.H2HGames > 0 {
		lines = append(lines, fmt.Sprintf("In-season H2H: %d games, %s avg combined points",
			s.H2HGames, export.Number(s.H2HAvgTotalPoints)))
	} else {
		lines = append(lines, "In-season H2H: no meetings yet")
	}
	return lines
}

// --------------------------------------------------------------------------
// h2h command
// --------------------------------------------------------------------------

func h2hCmd() *cobra.Command {
	var season, lastN, seasonsBack int
	cmd := &cobra.Command{
		Use:   "h2h TEAM_A TEAM_B",
		Short: "List recent meetings between two teams",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(func(ctx context.Context, b *report.Builder) error {
				rep, err := b.HeadToHead(ctx, report.H2HRequest{
					Home:           args[0],
					Away:           args[1],
					Season:         season,
					LastN:          lastN,
					MaxSeasonsBack: seasonsBack,
				})
				if err != nil {
					return err
				}
				if rep == nil {
					return fmt.Errorf("no head-to-head games found for %s vs %s", args[0], args[1])
				}
				s := rep.Summary
				return emit(cmd.OutOrStdout(), export.H2HTable(rep), []string{
					fmt.Sprintf("%s vs %s: %d meetings searching back from %s, %s avg combined points",
						s.TeamA.Abbreviation, s.TeamB.Abbreviation, s.Games, s.StartSeason, export.Number(s.AvgTotalPoints)),
				})
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season to start searching from (default CURRENT_SEASON)")
	cmd.Flags().IntVar(&lastN, "last-n", report.DefaultLastNH2H, "Number of meetings")
	cmd.Flags().IntVar(&seasonsBack, "seasons-back", 0, "Seasons to search (default H2H_MAX_SEASONS_BACK)")
	return cmd
}

// --------------------------------------------------------------------------
// player command
// --------------------------------------------------------------------------

func playerCmd() *cobra.Command {
	var (
		season, lastN, period int
		rawLines              []string
	)
	cmd := &cobra.Command{
		Use:   "player NAME",
		Short: "Check a player's recent games against stat lines",
		Long: "Check a player's recent games against stat lines.\n\n" +
			"Lines are KEY=THRESHOLD (or KEY:THRESHOLD). Keys: pts reb ast fg3m stl blk,\n" +
			"combos pra ra pr pa sb pb, and dd/td (double/triple-double, threshold 1).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := parseLineFlags(rawLines)
			if err != nil {
				return err
			}
			if err := report.ValidatePeriod(period); err != nil {
				return err
			}
			return runReport(func(ctx context.Context, b *report.Builder) error {
				rep, err := b.PlayerLines(ctx, report.PlayerRequest{
					Name:   args[0],
					Season: season,
					Lines:  lines,
					LastN:  lastN,
					Period: period,
				})
				if err != nil {
					return err
				}
				if rep == nil {
					return fmt.Errorf("no games found for player %q", args[0])
				}
				return emit(cmd.OutOrStdout(), export.PlayerTable(rep), playerHeadline(rep))
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season start year (default CURRENT_SEASON)")
	cmd.Flags().IntVar(&lastN, "last-n", report.DefaultLastN, "Games to evaluate")
	cmd.Flags().IntVar(&period, "period", 0, "Quarter 1-4, 0 for the full game")
	cmd.Flags().StringArrayVar(&rawLines, "line", nil, "Stat line KEY=THRESHOLD, repeatable")
	_ = cmd.MarkFlagRequired("line")
	return cmd
}

// parseLineFlags parses repeated --line values. A value may itself hold a
// comma-separated list; a repeated key keeps its last threshold.
func parseLineFlags(raw []string) ([]stats.Line, error) {
	var lines []stats.Line
	for _, r := range raw {
		parsed, err := stats.ParseLines(r)
		if err != nil {
			return nil, err
		}
		for _, l := range parsed {
			lines = stats.MergeLine(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("at least one --line is required")
	}
	return lines, nil
}

func playerHeadline(rep *report.PlayerReport) []string {
	s := rep.Summary
	out := []string{fmt.Sprintf("%s, %s, %s: %d games, %s avg minutes",
		s.Player.FullName, s.Season, s.PeriodLabel, s.Games, export.Number(s.AvgMinutes))}
	for _, t := range s.Lines {
		out = append(out, fmt.Sprintf("  %s %s: %d/%d (%s%%)", t.Label, t.Line, t.Hits, t.Games, export.Number(t.HitRate)))
	}
	if s.ApproximateGames > 0 {
		out = append(out, fmt.Sprintf("  %d games used full-game stats (quarter data unavailable)", s.ApproximateGames))
	}
	if n := len(s.OtherCandidates); n > 0 {
		names := make([]string, 0, n)
		for _, p := range s.OtherCandidates {
			names = append(names, p.FullName)
		}
		out = append(out, fmt.Sprintf("  Also matched: %s", joinNames(names, 5)))
	}
	return out
}

func joinNames(names []string, max int) string {
	if len(names) <= max {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(names[:max], ", "), len(names)-max)
}

// --------------------------------------------------------------------------
// players command
// --------------------------------------------------------------------------

func playersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players QUERY",
		Short: "List catalog players whose name contains QUERY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(func(ctx context.Context, b *report.Builder) error {
				players := b.Catalog().FindPlayers(args[0])
				return emit(cmd.OutOrStdout(), export.PlayersTable(players), []string{
					fmt.Sprintf("%d players match %q", len(players), args[0]),
				})
			})
		},
	}
}

// --------------------------------------------------------------------------
// scan command
// --------------------------------------------------------------------------

func scanCmd() *cobra.Command {
	var (
		req     report.ScanRequest
		statKey string
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Find active players who keep clearing a line",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := stats.ParseKey(statKey)
			if err != nil {
				return err
			}
			req.Key = key
			if req.MinHitRate < 0 || req.MinHitRate > 1 {
				return fmt.Errorf("--min-hit-rate must be between 0 and 1, got %v", req.MinHitRate)
			}
			return runReport(func(ctx context.Context, b *report.Builder) error {
				start := time.Now()
				rep, err := b.Scan(ctx, req)
				if err != nil {
					return err
				}
				for _, e := range rep.Summary.Errors {
					logger.Warn("player skipped", "error", e)
				}
				s := rep.Summary
				return emit(cmd.OutOrStdout(), export.ScanTable(rep), []string{
					fmt.Sprintf("%s %s over last %d, %s: scanned %d, skipped %d, matched %d in %s",
						s.Label, s.Line, s.LastN, s.Season, s.Scanned, s.Skipped, s.Matched,
						time.Since(start).Round(time.Second)),
				})
			})
		},
	}
	cmd.Flags().IntVar(&req.Season, "season", 0, "Season start year (default CURRENT_SEASON)")
	cmd.Flags().StringVar(&statKey, "stat", string(stats.KeyPoints), "Stat key")
	cmd.Flags().Float64Var(&req.Line, "line", 20, "Line threshold")
	cmd.Flags().IntVar(&req.LastN, "last-n", report.DefaultLastN, "Games per player")
	cmd.Flags().Float64Var(&req.MinHitRate, "min-hit-rate", 0.7, "Minimum hit rate (0-1)")
	cmd.Flags().IntVar(&req.MinGames, "min-games", 8, "Minimum games played in the window")
	cmd.Flags().IntVar(&req.MaxPlayers, "max-players", 0, "Scan at most this many players (0 = all)")
	return cmd
}

// --------------------------------------------------------------------------
// next command
// --------------------------------------------------------------------------

func nextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next TEAM",
		Short: "Show a team's next scheduled game date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(func(ctx context.Context, b *report.Builder) error {
				team, err := b.Catalog().ResolveTeam(args[0])
				if err != nil {
					return err
				}
				date, ok := b.NextGame(ctx, team.Abbreviation)
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: no upcoming game in the next 30 days\n", team.FullName)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: next game %s\n", team.FullName, date)
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared
// --------------------------------------------------------------------------

// emit writes the table as CSV, or as a text table followed by the headline.
func emit(w io.Writer, t export.Table, headline []string) error {
	if csvOutput {
		return export.WriteCSV(w, t)
	}
	if err := export.WriteText(w, t); err != nil {
		return err
	}
	fmt.Fprintln(w)
	for _, line := range headline {
		fmt.Fprintln(w, line)
	}
	return nil
}

func runReport(fn func(ctx context.Context, b *report.Builder) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level := cfg.LogLevel
	if !verbose && level < slog.LevelWarn {
		level = slog.LevelWarn
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	client := nbastats.NewClient(cfg.StatsAPIBaseURL, cfg.StatsAPITimeout, cfg.StatsAPIRequestsPerMinute, logger)
	cat, err := catalog.Load(ctx, client, cfg.CurrentSeason, cfg.PlayersFile)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	builder := report.NewBuilder(cat, client, report.SettingsFromConfig(cfg), logger)
	return fn(ctx, builder)
}
