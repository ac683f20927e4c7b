package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/simonhull/imagescore"
	"github.com/simonhull/imagescore/internal/config"
)

type scanResult struct {
	Root     string             `json:"root"`
	MinScore float64            `json:"min_score"`
	Matches  []imagescore.Match `json:"matches"`
	Stats    imagescore.Stats   `json:"stats"`
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var (
		minScore       float64
		workers        int
		followSymlinks bool
		jsonOutput     bool
	)

	cmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "Rank images under a folder by aesthetic score",
		Long: "Scan walks a folder (or reads a single file), keeps every PNG, JPEG,\n" +
			"TIFF, WebP, HEIF or AVIF image whose aesthetic score is at least\n" +
			"--min-score, and lists them highest first.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("min-score") {
				minScore = cfg.Scan.MinScore
			}
			if flags.Changed("workers") {
				if workers < 0 {
					return fmt.Errorf("--workers must be >= 0, got %d", workers)
				}
				workers = config.ResolveWorkers(workers)
			} else {
				workers = cfg.Scan.Workers
			}
			if !flags.Changed("follow-symlinks") {
				followSymlinks = cfg.Scan.FollowSymlinks
			}

			root := args[0]
			matches, stats, err := imagescore.ScanWithStats(cmd.Context(), root, minScore,
				imagescore.WithConcurrency(workers),
				imagescore.WithFollowSymlinks(followSymlinks),
				imagescore.WithLogger(ctx.loggerValue()),
			)
			if err != nil {
				return err
			}
			if matches == nil {
				matches = []imagescore.Match{}
			}

			if ctx.wantJSON(jsonOutput) {
				return writeJSON(cmd, scanResult{Root: root, MinScore: minScore, Matches: matches, Stats: stats})
			}

			out := cmd.OutOrStdout()
			headers := []string{"#", "Score", "Path"}
			rows := make([][]string, 0, len(matches))
			for i, m := range matches {
				rows = append(rows, []string{strconv.Itoa(i + 1), formatScore(m.Score), m.Path})
			}
			if !isTerminal(out) {
				fmt.Fprint(out, renderTSV(headers, rows))
				return nil
			}
			if len(matches) > 0 {
				fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignRight, alignRight, alignLeft}))
			}
			fmt.Fprintln(out, summaryLine(len(matches), stats))
			return nil
		},
	}

	cmd.Flags().Float64Var(&minScore, "min-score", 0, "Minimum aesthetic score (defaults to scan.min_score)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Files analyzed at once, 0 for one per CPU (defaults to scan.workers)")
	cmd.Flags().BoolVar(&followSymlinks, "follow-symlinks", false, "Descend into symlinked folders")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print matches and statistics as JSON")
	return cmd
}

func summaryLine(matches int, stats imagescore.Stats) string {
	return fmt.Sprintf("%s of %s analyzed, %s skipped, %s unreadable (%s read in %s)",
		plural(matches, "match", "matches"),
		plural(stats.Analyzed, "image", "images"),
		humanize.Comma(int64(stats.Skipped)),
		humanize.Comma(int64(stats.Failed)),
		humanize.Bytes(uint64(stats.Bytes)),
		plural(stats.Dirs, "folder", "folders"),
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return humanize.Comma(int64(n)) + " " + many
}
