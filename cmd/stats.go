package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/zjrosen/keytrain/internal/config"
	"github.com/zjrosen/keytrain/internal/stats"
)

var statsLimit int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded practice session statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVarP(&statsLimit, "limit", "n", 10,
		"number of recent sessions to show")
	rootCmd.AddCommand(statsCmd)
}

var (
	statsHeaderStyle = lipgloss.NewStyle().Bold(true)
	statsMutedStyle  = lipgloss.NewStyle().Faint(true)
)

func runStats(cmd *cobra.Command, args []string) error {
	dbPath := cfg.Stats.DBPath
	if dbPath == "" {
		dbPath = config.DefaultStatsDBPath()
	}
	if dbPath == "" {
		return fmt.Errorf("no stats database path configured")
	}

	store, err := stats.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("opening stats store: %w", err)
	}
	defer store.Close()

	totals, err := store.Totals()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, statsHeaderStyle.Render("Totals"))
	fmt.Fprintf(out, "  sessions: %d  keys: %d  edits: %d  mode switches: %d\n\n",
		totals.Sessions, totals.KeysHandled, totals.EditsApplied, totals.ModeSwitches)

	summaries, err := store.Recent(statsLimit)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Fprintln(out, statsMutedStyle.Render("no sessions recorded yet"))
		return nil
	}

	fmt.Fprintln(out, statsHeaderStyle.Render("Recent sessions"))
	for _, s := range summaries {
		fmt.Fprintf(out, "  %s  %s  %-8s keys: %-4d edits: %-4d switches: %d\n",
			s.StartedAt.Format("2006-01-02 15:04"),
			statsMutedStyle.Render(shortID(s.SessionID)),
			s.Duration().Round(time.Second).String(),
			s.KeysHandled, s.EditsApplied, s.ModeSwitches)
	}
	return nil
}

// shortID truncates a session UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
