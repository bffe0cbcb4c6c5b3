package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/higexxp/issuedash/internal/timetrack"
)

func newTrackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "track",
		Aliases: []string{"t"},
		Short:   "Track working time per user and issue",
	}

	cmd.PersistentFlags().StringP("repo", "r", "", "Repository (owner/repo)")
	cmd.PersistentFlags().StringP("user", "u", defaultUser(), "User ID (defaults to $USER)")

	cmd.AddCommand(
		newTrackStartCmd(),
		newTrackPauseCmd(),
		newTrackResumeCmd(),
		newTrackStopCmd(),
		newTrackEntryCmd(),
		newTrackStatusCmd(),
		newTrackReportCmd(),
		newTrackLabelsCmd(),
	)
	return cmd
}

func defaultUser() string {
	return os.Getenv("USER")
}

// trackTarget resolves the issue number argument plus repo/user flags.
func trackTarget(cmd *cobra.Command, args []string) (int, string, string, error) {
	issue, err := strconv.Atoi(args[0])
	if err != nil || issue <= 0 {
		return 0, "", "", fmt.Errorf("invalid issue number %q", args[0])
	}
	repo, _ := cmd.Flags().GetString("repo")
	user, _ := cmd.Flags().GetString("user")
	if user == "" {
		return 0, "", "", fmt.Errorf("no user; pass --user or set $USER")
	}
	return issue, repo, user, nil
}

func newTrackStartCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "start <issue>",
		Short: "Start a tracking session, taking over any live one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := getDeps(cmd)
			if err != nil {
				return err
			}
			out, err := outputType(cmd)
			if err != nil {
				return err
			}
			issue, repo, user, err := trackTarget(cmd, args)
			if err != nil {
				return err
			}

			sess, err := deps.Time.StartSession(issue, repo, user, description)
			if err != nil {
				return fmt.Errorf("failed to start session: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), deps.Formatter.Session(sess, out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "What you are working on")
	return cmd
}

func newTrackPauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause <issue>",
		Short: "Pause the active session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := getDeps(cmd)
			if err != nil {
				return err
			}
			out, err := outputType(cmd)
			if err != nil {
				return err
			}
			issue, repo, user, err := trackTarget(cmd, args)
			if err != nil {
				return err
			}

			sess := deps.Time.PauseSession(issue, repo, user)
			if sess == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No matching active session.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), deps.Formatter.Session(sess, out))
			return nil
		},
	}
}

func newTrackResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume <issue>",
		Short: "Resume a paused session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := getDeps(cmd)
			if err != nil {
				return err
			}
			out, err := outputType(cmd)
			if err != nil {
				return err
			}
			issue, repo, user, err := trackTarget(cmd, args)
			if err != nil {
				return err
			}

			sess := deps.Time.ResumeSession(issue, repo, user)
			if sess == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No matching paused session.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), deps.Formatter.Session(sess, out))
			return nil
		},
	}
}

func newTrackStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop <issue>",
		Short: "Stop the session and record a time entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := getDeps(cmd)
			if err != nil {
				return err
			}
			out, err := outputType(cmd)
			if err != nil {
				return err
			}
			issue, repo, user, err := trackTarget(cmd, args)
			if err != nil {
				return err
			}

			entry, err := deps.Time.StopSession(issue, repo, user)
			if err != nil {
				return fmt.Errorf("failed to stop session: %w", err)
			}
			if entry == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No matching session to stop.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), deps.Formatter.EntryList([]timetrack.Entry{*entry}, out))
			return nil
		},
	}
}

func newTrackEntryCmd() *cobra.Command {
	var description string
	var start string
	var tags []string

	cmd := &cobra.Command{
		Use:   "entry <issue> <minutes>",
		Short: "Add a manual time entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := getDeps(cmd)
			if err != nil {
				return err
			}
			out, err := outputType(cmd)
			if err != nil {
				return err
			}
			issue, repo, user, err := trackTarget(cmd, args)
			if err != nil {
				return err
			}
			minutes, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid minutes %q", args[1])
			}

			var startTime time.Time
			if start != "" {
				startTime, err = time.Parse(time.RFC3339, start)
				if err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}
			}

			entry, err := deps.Time.AddEntry(issue, repo, user, minutes, description, startTime, tags)
			if err != nil {
				return fmt.Errorf("failed to add entry: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), deps.Formatter.EntryList([]timetrack.Entry{*entry}, out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Entry description")
	cmd.Flags().StringVar(&start, "start", "", "Start time (RFC3339, defaults to now)")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Tags for the entry")
	return cmd
}

func newTrackStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := getDeps(cmd)
			if err != nil {
				return err
			}
			out, err := outputType(cmd)
			if err != nil {
				return err
			}
			user, _ := cmd.Flags().GetString("user")
			if user == "" {
				return fmt.Errorf("no user; pass --user or set $USER")
			}

			sess := deps.Time.ActiveSession(user)
			fmt.Fprintln(cmd.OutOrStdout(), deps.Formatter.Session(sess, out))
			return nil
		},
	}
}

func newTrackReportCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate a time report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := getDeps(cmd)
			if err != nil {
				return err
			}
			out, err := outputType(cmd)
			if err != nil {
				return err
			}
			user, _ := cmd.Flags().GetString("user")

			end := time.Now()
			start := end.AddDate(0, 0, -7)
			if from != "" {
				start, err = parseDateFlag(from)
				if err != nil {
					return fmt.Errorf("invalid --from: %w", err)
				}
			}
			if to != "" {
				end, err = parseDateFlag(to)
				if err != nil {
					return fmt.Errorf("invalid --to: %w", err)
				}
			}

			rep, err := deps.Time.Report(user, start, end)
			if err != nil {
				return fmt.Errorf("failed to build report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), deps.Formatter.Report(rep, out))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Report start (RFC3339 or YYYY-MM-DD, default 7 days ago)")
	cmd.Flags().StringVar(&to, "to", "", "Report end (RFC3339 or YYYY-MM-DD, default now)")
	return cmd
}

func newTrackLabelsCmd() *cobra.Command {
	var existing []string

	cmd := &cobra.Command{
		Use:   "labels <issue>",
		Short: "Print the issue's label set with time-spent recomputed",
		Long: `Recompute the time-spent label for an issue from its tracked
entries and print the resulting label set, one per line, for piping
into 'gh issue edit --add-label'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := getDeps(cmd)
			if err != nil {
				return err
			}
			issue, err := strconv.Atoi(args[0])
			if err != nil || issue <= 0 {
				return fmt.Errorf("invalid issue number %q", args[0])
			}
			repo, _ := cmd.Flags().GetString("repo")

			updated, err := deps.Time.SpentLabels(issue, repo, existing)
			if err != nil {
				return fmt.Errorf("failed to compute labels: %w", err)
			}
			for _, l := range updated {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&existing, "existing", nil, "Current labels on the issue")
	return cmd
}

func parseDateFlag(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
