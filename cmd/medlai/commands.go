package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/medlai"
	"github.com/ZaguanLabs/medlai/cache"
	"github.com/ZaguanLabs/medlai/internal/server"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// withApp builds the app for one command and always releases it.
func withApp(cmd *cobra.Command, fn func(a *app) error) (err error) {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.close())
	}()
	return fn(a)
}

func structureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "structure [file]",
		Short: "Parse a discharge summary into categories and print it as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app) error {
				return writeJSON(cmd.OutOrStdout(), a.engine.Structure(input))
			})
		},
	}
}

func translateCmd() *cobra.Command {
	var (
		targetLang string
		sourceLang string
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "translate [text...]",
		Short: "Translate text through the provider chain",
		Long:  "Translate each argument through the provider chain. Without arguments, stdin is translated as one text.",
		RunE: func(cmd *cobra.Command, args []string) error {
			texts := args
			if len(texts) == 0 {
				input, err := readInput(cmd, nil)
				if err != nil {
					return err
				}
				texts = []string{strings.TrimSpace(input)}
			}

			return withApp(cmd, func(a *app) error {
				source := sourceLang
				if source == "" {
					source = a.resolver.SourceLang()
				}

				res, err := a.resolver.TranslateBatchFrom(cmd.Context(), texts, source, targetLang)
				if err != nil {
					return fmt.Errorf("translation failed: %w", err)
				}

				out := cmd.OutOrStdout()
				if jsonOut {
					return writeJSON(out, res)
				}
				for _, t := range res.TranslatedTexts {
					fmt.Fprintln(out, t)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "service: %s, confidence: %.2f\n", res.ServiceUsed, res.Confidence)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&targetLang, "lang", "l", "", "Target language code (e.g., es, zh-CN)")
	cmd.Flags().StringVar(&sourceLang, "source", "", "Source language code (default: configured source language)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output result as JSON")
	_ = cmd.MarkFlagRequired("lang")

	return cmd
}

func processCmd() *cobra.Command {
	var (
		targetLang string
		jsonOut    bool
		envelope   bool
	)

	cmd := &cobra.Command{
		Use:   "process [file]",
		Short: "Structure a discharge summary and translate every category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			return withApp(cmd, func(a *app) error {
				p := medlai.NewPipeline(a.engine, a.resolver, medlai.WithPipelineLogger(a.logger))
				res, err := p.Process(cmd.Context(), input, targetLang)
				if err != nil {
					return fmt.Errorf("processing failed: %w", err)
				}

				out := cmd.OutOrStdout()
				switch {
				case envelope:
					hospital := a.cfg.Hospital.Branding()
					data, err := medlai.EncodeEnvelope(input, res.Translated, &hospital)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(out, string(data))
					return err
				case jsonOut:
					return writeJSON(out, res)
				}

				printTranslated(out, res)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&targetLang, "lang", "l", "", "Target language code (e.g., es, zh-CN)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output result as JSON")
	cmd.Flags().BoolVar(&envelope, "envelope", false, "Output the QR envelope instead of the record")
	_ = cmd.MarkFlagRequired("lang")

	return cmd
}

// printTranslated renders the translated record category by category.
func printTranslated(w io.Writer, res *medlai.ProcessResult) {
	tr := res.Translated
	fmt.Fprintf(w, "Language: %s (%s)\n", medlai.GetLanguageName(tr.Language), tr.Direction)
	fmt.Fprintf(w, "Confidence: %.0f%%\n", tr.Overall*100)

	if name := tr.Patient.Name; name != "" {
		fmt.Fprintf(w, "Patient: %s\n", name)
	}
	if len(tr.Allergies) > 0 {
		fmt.Fprintf(w, "Allergies: %s\n", strings.Join(tr.Allergies, ", "))
	}

	for _, c := range medlai.Categories {
		items := tr.Categories[c]
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s [%s]\n", c, tr.Services[c])
		for _, item := range items {
			fmt.Fprintf(w, "  - %s\n", item)
		}
	}

	for _, e := range res.Errors {
		fmt.Fprintf(w, "\n! %s: %s\n", e.Category, e.Message)
	}
}

func diffCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "diff <previous> <current>",
		Short: "Compare two discharge summaries and show which items need translation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prev, err := readInput(cmd, args[:1])
			if err != nil {
				return fmt.Errorf("reading previous version: %w", err)
			}
			curr, err := readInput(cmd, args[1:])
			if err != nil {
				return err
			}

			return withApp(cmd, func(a *app) error {
				diff := medlai.DiffRecords(a.engine.Structure(prev), a.engine.Structure(curr))
				out := cmd.OutOrStdout()

				if jsonOut {
					return writeJSON(out, struct {
						Stats            medlai.DiffStats   `json:"stats"`
						NeedsTranslation []medlai.ItemRef   `json:"needs_translation"`
						Diff             *medlai.DiffResult `json:"diff"`
					}{diff.Stats(), diff.NeedsTranslation(), diff})
				}

				printDiff(out, diff)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output result as JSON")
	return cmd
}

func printDiff(w io.Writer, diff *medlai.DiffResult) {
	stats := diff.Stats()
	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Unchanged: %d\n", stats.Unchanged)
	fmt.Fprintf(w, "  Added:     %d\n", stats.Added)
	fmt.Fprintf(w, "  Removed:   %d\n", stats.Removed)
	fmt.Fprintf(w, "  Modified:  %d\n", stats.Modified)

	if !diff.HasChanges() {
		fmt.Fprintf(w, "\nNo changes detected. All translations are up to date.\n")
		return
	}

	fmt.Fprintf(w, "\nNeeds translation: %d items\n", len(diff.NeedsTranslation()))
	for _, item := range diff.Added {
		fmt.Fprintf(w, "  + [%s] %q\n", item.Category, item.Text)
	}
	for _, m := range diff.Modified {
		fmt.Fprintf(w, "  ~ [%s] %q -> %q\n", m.New.Category, m.Old.Text, m.New.Text)
	}
	for _, item := range diff.Removed {
		fmt.Fprintf(w, "  - [%s] %q\n", item.Category, item.Text)
	}
}

func languagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported target languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, code := range medlai.SupportedLanguages {
				fmt.Fprintf(out, "%-6s %-12s %-12s %s\n",
					code, medlai.GetLanguageName(code), medlai.NativeLanguageNames[code], medlai.GetDirection(code))
			}
			return nil
		},
	}
}

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Export, import or clear the translation cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export [file]",
		Short: "Write the cache contents as JSON (stdout without a file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				meta := map[string]string{"version": medlai.FullVersion()}
				exp := cache.NewExporter(a.cache)

				var (
					n   int
					err error
				)
				if len(args) == 1 {
					n, err = exp.ExportToFile(args[0], meta)
				} else {
					n, err = exp.Export(cmd.OutOrStdout(), meta)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "exported %d entries\n", n)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Load a cache export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				res, err := cache.NewImporter(a.cache).ImportFromFile(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d, failed %d\n", res.Imported, res.Skipped, res.Failed)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached translation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				return a.resolver.ClearCache()
			})
		},
	})

	return cmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				srv := server.New(a.engine, a.resolver, a.cfg.Hospital.Branding(), server.Config{
					ReadTimeout:  a.cfg.Server.ReadTimeout,
					WriteTimeout: a.cfg.Server.WriteTimeout,
					BodyLimit:    a.cfg.Server.BodyLimit,
				}, a.logger)

				addr := a.cfg.Server.Host + ":" + strconv.Itoa(a.cfg.Server.Port)
				errCh := make(chan error, 1)
				go func() {
					errCh <- srv.Start(addr)
				}()

				quit := make(chan os.Signal, 1)
				signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
				defer signal.Stop(quit)

				select {
				case err := <-errCh:
					return err
				case <-quit:
				}

				a.logger.Info().Msg("shutting down server")
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(a.cfg.Server.ShutdownTimeout))
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					return fmt.Errorf("server shutdown failed: %w", err)
				}
				a.logger.Info().Msg("server stopped")
				return nil
			})
		},
	}
}

func shutdownTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 10 * time.Second
	}
	return d
}
