package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/higexxp/issuedash/internal/format"
)

// Context key type for dependencies injection
type depsKey string

const dependenciesKey depsKey = "dependencies"

// getDeps extracts Dependencies from command context.
// Returns an error if dependencies are not found, which indicates a programming bug.
func getDeps(cmd *cobra.Command) (*Dependencies, error) {
	deps, ok := cmd.Context().Value(dependenciesKey).(*Dependencies)
	if !ok {
		return nil, fmt.Errorf("internal error: dependencies not initialized")
	}
	return deps, nil
}

// outputType resolves the global --output flag.
func outputType(cmd *cobra.Command) (format.OutputType, error) {
	raw, _ := cmd.Flags().GetString("output")
	return format.ParseOutputType(raw)
}

// readBodyArg reads the issue body from a file argument, or stdin when
// the argument is "-" or absent.
func readBodyArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
