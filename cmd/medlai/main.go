// Command medlai structures hospital discharge summaries and translates them
// for patients.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/medlai"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = medlai.Version
	commit    = medlai.GitCommit
	buildDate = medlai.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	root := rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(context.Background())
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           medlai.Name,
		Short:         medlai.Description,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("cache-file", "", "Load the translation cache from this export before running and save it afterwards")

	root.AddCommand(structureCmd())
	root.AddCommand(translateCmd())
	root.AddCommand(processCmd())
	root.AddCommand(diffCmd())
	root.AddCommand(languagesCmd())
	root.AddCommand(cacheCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())

	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", medlai.Name, version)
			if commit != "unknown" && commit != "" {
				fmt.Fprintf(out, "  commit:  %s\n", commit)
			}
			if buildDate != "unknown" && buildDate != "" {
				fmt.Fprintf(out, "  built:   %s\n", buildDate)
			}
			return nil
		},
	}
}
