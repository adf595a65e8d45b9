package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/mdmeta/internal/config"
	"github.com/thoreinstein/mdmeta/internal/errors"
	"github.com/thoreinstein/mdmeta/internal/logging"
	"github.com/thoreinstein/mdmeta/internal/metadata"
	"github.com/thoreinstein/mdmeta/internal/openai"
	"github.com/thoreinstein/mdmeta/pkg/fileutil"
	"github.com/thoreinstein/mdmeta/pkg/frontmatter"
)

// completionClient is the seam between the pipeline and the remote endpoint,
// so tests can inject a fake.
type completionClient interface {
	GenerateMetadata(ctx context.Context, body string) (metadata.Generated, error)
}

func runGenerate(cobraCmd *cobra.Command, args []string) error {
	cfg := loadedConfig
	if cfg == nil {
		cfg = &config.Config{}
	}

	// The credential check happens before any file I/O.
	if cfg.APIKey == "" {
		return errors.NewUserError(errors.ErrMissingCredential,
			"Set the OPENAI_API_KEY environment variable")
	}

	filename, err := resolveFilename(args)
	if err != nil {
		return err
	}

	client, err := openai.NewClient(openai.Config{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
	})
	if err != nil {
		return errors.NewUserError(err, "Check your model and OPENAI_API_KEY settings")
	}

	ctx := cobraCmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return runPipeline(ctx, pipelineOpts{
		client:   client,
		filename: filename,
		override: overrideFlag,
		inplace:  inplaceFlag,
		stdout:   cobraCmd.OutOrStdout(),
		stderr:   cobraCmd.ErrOrStderr(),
	})
}

// resolveFilename returns the positional argument, or falls back to the
// interactive picker when the user gave none.
func resolveFilename(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return pickMarkdownFile()
}

// pipelineOpts carries the pipeline inputs; tests construct it directly.
type pipelineOpts struct {
	client   completionClient
	filename string
	override bool
	inplace  bool
	stdout   io.Writer
	stderr   io.Writer
}

// runPipeline runs parse -> generate -> merge -> render -> write for a
// single document.
func runPipeline(ctx context.Context, opts pipelineOpts) error {
	logger := logging.FromContext(ctx)

	raw, err := fileutil.ReadFileWithLimit(opts.filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errors.NewUserError(
				errors.Wrapf(errors.ErrFileNotFound, "%s", opts.filename),
				"Check the file path")
		}
		return err
	}

	doc, err := frontmatter.Parse(raw)
	if err != nil {
		return errors.Wrapf(err, "parsing %s", opts.filename)
	}

	// Skip before spending an API call when the outcome is already known.
	if metadata.HasHead(doc.Matter) && !opts.override {
		return emitSkipped(raw, opts)
	}

	gen, err := opts.client.GenerateMetadata(ctx, doc.Body)
	if err != nil {
		return err
	}
	logger.Info("metadata generated",
		"description_len", len(gen.Description),
		"keywords", len(gen.Keywords))

	merged, outcome := metadata.Merge(doc.Matter, gen, opts.override)
	if outcome == metadata.Skipped {
		return emitSkipped(raw, opts)
	}

	out, err := (&frontmatter.Document{Matter: merged, Body: doc.Body}).Render()
	if err != nil {
		return err
	}

	if opts.inplace {
		perm := fileutil.FileMode(opts.filename, 0644)
		if err := fileutil.AtomicWriteFile(opts.filename, out, perm); err != nil {
			return errors.NewSystemError(err, "The original file is untouched")
		}
		logger.Info("file updated", "filename", opts.filename, "bytes", len(out))
		return nil
	}

	_, err = opts.stdout.Write(out)
	return err
}

// emitSkipped handles the existing-head no-op: a warning on stderr, the raw
// input bytes on stdout (unless writing in place), and a zero exit. The
// original document is passed through untouched, never re-serialized.
func emitSkipped(raw []byte, opts pipelineOpts) error {
	fmt.Fprintln(opts.stderr,
		"Warning: head metadata is already set up. Use --override to replace it.")

	if opts.inplace {
		// Nothing to write; the file already has what it has.
		return nil
	}

	_, err := opts.stdout.Write(raw)
	return err
}
