package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

type historyOptions struct {
	limit   int
	session string
	summary bool
}

func newHistoryCmd(root *rootOptions) *cobra.Command {
	opts := &historyOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded gesture activations",
		Long: `Show the gesture transitions journaled by previous runs.

Examples:
  # Last 20 transitions across all sessions
  mudra history --limit 20

  # Every transition of one session
  mudra history --session 6f1c...

  # Activation counts per gesture
  mudra history --summary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			if cfg.Store.Path == "" {
				return fmt.Errorf("store.path is empty, no history is recorded")
			}

			st, err := store.New(cfg.Store.Path)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			return printHistory(cmd.OutOrStdout(), st, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 50, "number of events to show")
	cmd.Flags().StringVar(&opts.session, "session", "", "show every event of this session")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "print activation counts per gesture")

	return cmd
}

func printHistory(out io.Writer, st *store.Store, opts *historyOptions) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	if opts.summary {
		counts, err := st.Events().CountBySymbol(opts.session)
		if err != nil {
			return fmt.Errorf("count events: %w", err)
		}
		fmt.Fprintln(w, "GESTURE\tACTIVATIONS")
		for _, sym := range gesture.Symbols() {
			fmt.Fprintf(w, "%s\t%d\n", sym, counts[sym])
		}
		return nil
	}

	var (
		events []*store.Event
		err    error
	)
	if opts.session != "" {
		events, err = st.Events().ListBySession(opts.session)
	} else {
		events, err = st.Events().ListRecent(opts.limit)
	}
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}

	fmt.Fprintln(w, "TIME\tSESSION\tFRAME\tGESTURE\tSTATE")
	for _, e := range events {
		state := "off"
		if e.Active {
			state = "on"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			e.CreatedAt.Local().Format(time.DateTime), shortID(e.SessionID), e.Frame, e.Symbol, state)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
