package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var repo string
	var issue int

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse dependencies from an issue body",
		Long: `Parse dependency declarations from an issue body.

Reads the body from a file argument or stdin. Recognizes inline
"Depends on: #N" / "Blocks: #N" phrases (English and Japanese) and
structured "## Dependencies" sections. Malformed references are
silently dropped.`,
		Example: `  # Parse a local file
  issuedash parse body.md --repo owner/repo

  # Parse stdin
  gh issue view 42 --json body -q .body | issuedash parse - --repo owner/repo --issue 42`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := getDeps(cmd)
			if err != nil {
				return err
			}
			out, err := outputType(cmd)
			if err != nil {
				return err
			}
			body, err := readBodyArg(cmd, args)
			if err != nil {
				return err
			}

			res := deps.Deps.Parse(body, repo, issue)
			fmt.Fprintln(cmd.OutOrStdout(), deps.Formatter.Dependencies(res.Dependencies, out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&repo, "repo", "r", "", "Current repository (owner/repo)")
	cmd.Flags().IntVarP(&issue, "issue", "n", 0, "Current issue number (enables self-dependency checks)")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var repo string
	var issue int

	cmd := &cobra.Command{
		Use:   "validate [file|-]",
		Short: "Parse and validate an issue body's dependencies",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := getDeps(cmd)
			if err != nil {
				return err
			}
			out, err := outputType(cmd)
			if err != nil {
				return err
			}
			body, err := readBodyArg(cmd, args)
			if err != nil {
				return err
			}

			res := deps.Deps.Parse(body, repo, issue)
			fmt.Fprintln(cmd.OutOrStdout(), deps.Formatter.Validation(&res.Validation, out))
			if !res.Validation.IsValid {
				return fmt.Errorf("validation failed with %d error(s)", len(res.Validation.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&repo, "repo", "r", "", "Current repository (owner/repo)")
	cmd.Flags().IntVarP(&issue, "issue", "n", 0, "Current issue number (enables self-dependency checks)")
	return cmd
}

func newMarkdownCmd() *cobra.Command {
	var repo string

	cmd := &cobra.Command{
		Use:   "markdown [file|-]",
		Short: "Regenerate the Dependencies section from an issue body",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := getDeps(cmd)
			if err != nil {
				return err
			}
			body, err := readBodyArg(cmd, args)
			if err != nil {
				return err
			}

			res := deps.Deps.Parse(body, repo, 0)
			fmt.Fprint(cmd.OutOrStdout(), deps.Deps.Markdown(res.Dependencies))
			return nil
		},
	}

	cmd.Flags().StringVarP(&repo, "repo", "r", "", "Current repository (owner/repo)")
	return cmd
}

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [owner/repo...]",
		Short: "Pull open issues from GitHub and build the dependency graph",
		Long: `Fetch open issues for the given repositories (or the configured
ones), parse their dependency sections, and print the combined graph.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := getDeps(cmd)
			if err != nil {
				return err
			}
			out, err := outputType(cmd)
			if err != nil {
				return err
			}

			repos := args
			if len(repos) == 0 {
				repos = deps.Config.GitHub.Repos
			}
			if len(repos) == 0 {
				return fmt.Errorf("no repositories given; pass owner/repo or set github.repos in the config")
			}

			g, err := deps.Sync.Sync(cmd.Context(), repos)
			if err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), deps.Formatter.Graph(g, out))
			return nil
		},
	}
	return cmd
}
