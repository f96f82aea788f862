package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shandysiswandi/godna/internal/dashboard/entity"
	"github.com/shandysiswandi/godna/internal/dashboard/export"
	"github.com/shandysiswandi/godna/internal/dashboard/fixture"
	"github.com/shandysiswandi/godna/internal/dashboard/store"
	"github.com/shandysiswandi/godna/internal/dashboard/usecase"
	"github.com/shandysiswandi/godna/internal/pkg/pkgerror"
	"github.com/shandysiswandi/godna/internal/pkg/pkguid"
)

// cliSession owns the upload history of a single CLI run.
const cliSession = "cli"

type options struct {
	formats  []string
	outDir   string
	fixtures string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "dnaexport",
		Short:         "Export marine DNA dashboard data to JSON, CSV, XLSX or PDF",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringSliceVarP(&opts.formats, "format", "f", []string{"json"}, "export formats: json, csv, xlsx, pdf or all")
	root.PersistentFlags().StringVarP(&opts.outDir, "out", "o", ".", "directory the files are written to")
	root.PersistentFlags().StringVar(&opts.fixtures, "fixtures", "", "fixture YAML file (defaults to the embedded data)")

	root.AddCommand(newViewCmd(opts), newSamplesCmd(opts), newDashboardCmd(opts))

	return root
}

func newViewCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "view <taxonomy|phylogeny|biodiversity>",
		Short:     "Export one visualization tab",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"taxonomy", "phylogeny", "biodiversity"},
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := opts.usecase()
			if err != nil {
				return err
			}
			return opts.write(cmd, func(ctx context.Context, format string) (export.File, error) {
				return uc.ExportView(ctx, args[0], format)
			})
		},
	}
}

func newSamplesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "samples",
		Short: "Export the sample analysis results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, err := opts.usecase()
			if err != nil {
				return err
			}
			return opts.write(cmd, uc.ExportSamples)
		},
	}
}

func newDashboardCmd(opts *options) *cobra.Command {
	var uploads []string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: `Export the "Export All" dashboard bundle`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, err := opts.usecase()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			for _, name := range uploads {
				if _, err := uc.Upload(ctx, cliSession, name); err != nil {
					return describe(err)
				}
			}

			return opts.write(cmd, func(ctx context.Context, format string) (export.File, error) {
				return uc.ExportDashboard(ctx, cliSession, format)
			})
		},
	}
	cmd.Flags().StringSliceVar(&uploads, "upload", nil, "FASTA file names to record in the upload history, oldest first")

	return cmd
}

func (o *options) usecase() (*usecase.Usecase, error) {
	fixtures, err := fixture.New(o.fixtures)
	if err != nil {
		return nil, err
	}

	numbers, err := pkguid.NewSnowflake()
	if err != nil {
		return nil, err
	}

	storage := store.NewInMemoryStore()
	if err := storage.CreateSession(context.Background(), entity.Session{ID: cliSession}); err != nil {
		return nil, err
	}

	return usecase.New(usecase.Dependency{
		Store:    storage,
		Fixtures: fixtures,
		ID:       pkguid.NewUUID(),
		Numbers:  numbers,
	}), nil
}

// resolveFormats expands "all" and rejects unknown names up front.
func (o *options) resolveFormats() ([]string, error) {
	var out []string
	seen := map[entity.Format]bool{}

	for _, raw := range o.formats {
		if strings.EqualFold(strings.TrimSpace(raw), "all") {
			for _, f := range entity.Formats {
				if !seen[f] {
					seen[f] = true
					out = append(out, string(f))
				}
			}
			continue
		}

		f, ok := entity.ParseFormat(raw)
		if !ok {
			return nil, fmt.Errorf("unsupported format %q", raw)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, string(f))
		}
	}

	return out, nil
}

func (o *options) write(cmd *cobra.Command, encode func(ctx context.Context, format string) (export.File, error)) error {
	formats, err := o.resolveFormats()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(o.outDir, 0o755); err != nil {
		return err
	}

	for _, format := range formats {
		file, err := encode(cmd.Context(), format)
		if err != nil {
			return describe(err)
		}

		path := filepath.Join(o.outDir, file.Filename())
		if err := os.WriteFile(path, file.Bytes(), 0o644); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}

	return nil
}

// describe surfaces the user-facing message of domain errors.
func describe(err error) error {
	if perr := pkgerror.From(err); perr != nil && perr.Type() != pkgerror.TypeServer {
		return errors.New(perr.Msg())
	}
	return err
}
