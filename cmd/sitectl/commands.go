package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mututech/site/internal/config"
	"github.com/mututech/site/internal/model"
	"github.com/mututech/site/internal/repository"
	"github.com/mututech/site/internal/slug"
)

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config [file|-]",
		Short: "Write an example config.yaml with every default filled in",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yamlData, err := yaml.Marshal(config.Default())
			if err != nil {
				return fmt.Errorf("error generating YAML: %w", err)
			}

			header := "# MutuTech site configuration example\n# Secrets (S3 keys, admin credentials) are read from the environment only\n\n"
			output := header + string(yamlData)

			outputFile := "config.example.yaml"
			if len(args) > 0 {
				outputFile = args[0]
			}

			if outputFile == "-" {
				_, err := io.WriteString(cmd.OutOrStdout(), output)
				return err
			}
			if err := os.WriteFile(outputFile, []byte(output), 0o644); err != nil {
				return fmt.Errorf("error writing file: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Generated example config: "+outputFile))
			return nil
		},
	}
}

func newStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the dataset is read from and how many records it holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			status := backend.Store.Status(cmd.Context())
			out := cmd.OutOrStdout()
			if opts.Format == "json" {
				return printJSON(out, status)
			}

			printTitle(out, "Storage")
			printField(out, "Record database", yesNo(status.RemoteConfigured))
			printField(out, "Snapshot readable", yesNo(status.SnapshotReadable))
			printField(out, "Image storage", yesNo(backend.Images != nil))
			printField(out, "Serving from", status.Source)
			printTitle(out, "Records")
			printField(out, "Blog", status.Counts.Blog)
			printField(out, "Portfolio", status.Counts.Portfolio)
			printField(out, "Products", status.Counts.Products)
			return nil
		},
	}
}

func newExportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file|-]",
		Short: "Write the current dataset as snapshot JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			db := backend.Store.GetDatabase(cmd.Context())

			if len(args) == 0 || args[0] == "-" {
				return printJSON(cmd.OutOrStdout(), db)
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("error creating %s: %w", args[0], err)
			}
			if err := printJSON(f, db); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			if opts.Format == "text" {
				fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf(
					"Exported %d posts, %d portfolio items, %d products to %s",
					len(db.Blog), len(db.Portfolio), len(db.Products), args[0],
				)))
			}
			return nil
		},
	}
}

func newImportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a snapshot JSON file into the current dataset and save it",
		Long: "Merge a snapshot JSON file into the current dataset and save it.\n" +
			"Records whose id already exists are replaced, new records are added in front.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var db model.Database
			if err := json.Unmarshal(data, &db); err != nil {
				return fmt.Errorf("error parsing %s: %w", filepath.Base(args[0]), err)
			}

			backend, err := openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			merged := mergeDatabase(backend.Store.GetDatabase(cmd.Context()), db)
			res, err := backend.Store.SaveDatabase(cmd.Context(), merged)
			return reportSave(cmd.OutOrStdout(), opts, res, err)
		},
	}
}

func newSeedCommand(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in sample content",
		Long: "Load the built-in sample content.\n" +
			"With --force the samples are merged into existing records, replacing any that share a sample id.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			status := backend.Store.Status(cmd.Context())
			total := status.Counts.Blog + status.Counts.Portfolio + status.Counts.Products
			if status.Source == repository.SourceRemote && total > 0 && !force {
				return fmt.Errorf("record database already holds %d records, use --force to merge the samples anyway", total)
			}

			merged := mergeDatabase(backend.Store.GetDatabase(cmd.Context()), model.DefaultSeed())
			res, err := backend.Store.SaveDatabase(cmd.Context(), merged)
			return reportSave(cmd.OutOrStdout(), opts, res, err)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "merge the samples into existing records, replacing those with the same id")
	return cmd
}

// mergeDatabase returns base with incoming applied. Incoming records with a
// known id replace it in place; the rest are put in front, newest first as
// in the snapshot.
func mergeDatabase(base, incoming model.Database) model.Database {
	base = base.Clone()
	incoming = incoming.Clone()
	return model.Database{
		Blog:      mergeRecords(base.Blog, incoming.Blog, func(p model.BlogPost) string { return p.ID }),
		Portfolio: mergeRecords(base.Portfolio, incoming.Portfolio, func(it model.PortfolioItem) string { return it.ID }),
		Products:  mergeRecords(base.Products, incoming.Products, func(p model.Product) string { return p.ID }),
	}
}

func mergeRecords[T any](base, incoming []T, id func(T) string) []T {
	index := make(map[string]int, len(base))
	for i, r := range base {
		index[id(r)] = i
	}

	added := make([]T, 0, len(incoming))
	for _, r := range incoming {
		if i, ok := index[id(r)]; ok {
			base[i] = r
			continue
		}
		added = append(added, r)
	}
	return append(added, base...)
}

// repairDatabase fills in slugs and dates that older records lack and reports
// how many records changed.
func repairDatabase(db *model.Database, now time.Time) int {
	fixed := 0

	for i := len(db.Blog) - 1; i >= 0; i-- {
		p := &db.Blog[i]
		changed := false
		if p.Slug == "" {
			p.Slug = slug.Unique(slug.SEO(p.Title, model.CollectionBlog), slug.BlogTaken(db.Blog, p.ID))
			changed = true
		}
		if p.Date == "" {
			p.Date = model.DisplayDate(now)
			changed = true
		}
		if changed {
			fixed++
		}
	}

	for i := len(db.Portfolio) - 1; i >= 0; i-- {
		it := &db.Portfolio[i]
		if it.Slug == "" {
			it.Slug = slug.Unique(slug.SEO(it.Title, model.CollectionPortfolio), slug.PortfolioTaken(db.Portfolio, it.ID))
			fixed++
		}
	}

	for i := range db.Products {
		if db.Products[i].Features == nil {
			db.Products[i].Features = []string{}
			fixed++
		}
	}

	return fixed
}

func newRepairCommand(opts *rootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Fill in missing slugs and dates and save the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			db := backend.Store.GetDatabase(cmd.Context())
			fixed := repairDatabase(&db, time.Now())

			out := cmd.OutOrStdout()
			if fixed == 0 || dryRun {
				if opts.Format == "json" {
					return printJSON(out, map[string]int{"repaired": fixed})
				}
				fmt.Fprintln(out, okStyle.Render(fmt.Sprintf("%d records need repair", fixed)))
				return nil
			}

			res, err := backend.Store.SaveDatabase(cmd.Context(), db)
			if opts.Format == "text" {
				fmt.Fprintln(out, okStyle.Render(fmt.Sprintf("Repaired %d records", fixed)))
			}
			return reportSave(out, opts, res, err)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only count the records that need repair")
	return cmd
}

func newUploadCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <image>",
		Short: "Upload an image to the object store and print its public URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			backend, err := openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			if backend.Images == nil {
				return errors.New("image storage is not configured (set S3_ENDPOINT, S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY)")
			}

			url, err := backend.Images.UploadImage(cmd.Context(), data, filepath.Base(args[0]))
			if err != nil {
				return err
			}

			if opts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]string{"url": url})
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
}

func reportSave(w io.Writer, opts *rootOptions, res repository.SaveResult, err error) error {
	if opts.Format == "json" {
		if encErr := printJSON(w, struct {
			RemoteAttempted bool `json:"remote_attempted"`
			RemoteSynced    bool `json:"remote_synced"`
			RemoteFailures  int  `json:"remote_failures"`
			LocalSaved      bool `json:"local_saved"`
		}{res.RemoteAttempted, res.RemoteSynced, len(res.RemoteFailures), res.LocalSaved}); encErr != nil {
			return encErr
		}
		return err
	}

	printTitle(w, "Saved")
	if res.RemoteAttempted {
		printField(w, "Record database", yesNo(res.RemoteSynced))
	} else {
		printField(w, "Record database", warnStyle.Render("not configured"))
	}
	printField(w, "Snapshot", yesNo(res.LocalSaved))
	for _, f := range res.RemoteFailures {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("  %s %s: %v", f.Collection, f.ID, f.Err)))
	}
	return err
}
