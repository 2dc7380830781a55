/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/m3org/petspec/pkg/defaults"
	"github.com/m3org/petspec/pkg/serializer"
	"github.com/m3org/petspec/pkg/validator"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate pet spec documents",
		ArgsUsage:             "PATH...",
		Description: `Validate one or more pet spec documents.

Each PATH is a local file, an HTTP/HTTPS URL, or "-" for stdin. Files ending
in .json are read as JSON, everything else as YAML. Documents are loaded
concurrently and reported in the order given. A document that cannot be
loaded is reported as skipped.

# Version Constraints

--require narrows the accepted spec versions beyond the built-in check:
  ">= 0.1.0"  - Greater than or equal
  "< 0.1"     - Less than
  "== 0.0.9"  - Exact match
  "0.0.9"     - Exact match (no operator)

# Examples

Validate a spec:
  petspec validate rex.yaml

Validate a directory of specs as JSON, failing CI on any rejection:
  petspec validate --format json --fail-on-error specs/*.yaml

Validate a remote spec:
  petspec validate https://cdn.example.com/pets/rex.json

Validate a spec served by a host with a self-signed certificate:
  petspec validate --insecure-skip-verify https://localhost:8443/rex.json`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with non-zero status if any spec fails validation",
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"c"},
				Value:   defaults.CLIConcurrency,
				Usage:   "Maximum number of documents loaded in parallel",
			},
			&cli.StringFlag{
				Name:    "require",
				Aliases: []string{"r"},
				Usage:   `Version constraint every spec must satisfy (e.g. ">= 0.1.0")`,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: defaults.CLIValidateTimeout,
				Usage: "Overall time limit for loading and validating; also bounds each remote fetch",
			},
			&cli.DurationFlag{
				Name:  "connect-timeout",
				Value: defaults.HTTPConnectTimeout,
				Usage: "Time limit for connecting to a remote spec host",
			},
			&cli.IntFlag{
				Name:  "max-bytes",
				Value: int(serializer.HttpReaderDefaultMaxBytes),
				Usage: "Maximum size of a remote spec document",
			},
			&cli.BoolFlag{
				Name:  "insecure-skip-verify",
				Usage: "Skip TLS certificate verification for remote specs",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return fmt.Errorf("at least one PATH is required")
			}

			concurrency := cmd.Int("concurrency")
			if concurrency < 1 {
				return fmt.Errorf("invalid concurrency %d: must be at least 1", concurrency)
			}

			opts := []validator.Option{validator.WithVersion(version)}
			if expr := cmd.String("require"); expr != "" {
				c, err := validator.ParseVersionConstraint(expr)
				if err != nil {
					return fmt.Errorf("invalid --require: %w", err)
				}
				opts = append(opts, validator.WithConstraint(c))
			}

			maxBytes := cmd.Int("max-bytes")
			if maxBytes < 1 {
				return fmt.Errorf("invalid max-bytes %d: must be at least 1", maxBytes)
			}

			timeout := cmd.Duration("timeout")
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			fetchOpts := []serializer.HttpReaderOption{
				serializer.WithUserAgent(fmt.Sprintf("%s/%s", name, version)),
				serializer.WithTotalTimeout(timeout),
				serializer.WithConnectTimeout(cmd.Duration("connect-timeout")),
				serializer.WithMaxBytes(int64(maxBytes)),
				serializer.WithInsecureSkipVerify(cmd.Bool("insecure-skip-verify")),
			}

			slog.Info("loading specs", "count", len(paths), "concurrency", concurrency)

			docs, err := loadDocuments(ctx, paths, concurrency, fetchOpts...)
			if err != nil {
				return fmt.Errorf("failed to load specs: %w", err)
			}

			result, err := validator.New(opts...).Validate(ctx, docs)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			ser, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if err != nil {
				return err
			}
			defer func() {
				if err := ser.Close(); err != nil {
					slog.Warn("failed to close serializer", "error", err)
				}
			}()

			if err := ser.Serialize(ctx, result); err != nil {
				return fmt.Errorf("failed to serialize validation result: %w", err)
			}

			slog.Info("validation completed",
				"status", result.Summary.Status,
				"passed", result.Summary.Passed,
				"failed", result.Summary.Failed,
				"skipped", result.Summary.Skipped,
				"duration", result.Summary.Duration)

			if cmd.Bool("fail-on-error") && result.Failed() {
				return fmt.Errorf("validation failed: %d spec(s) did not pass", result.Summary.Failed+result.Summary.Skipped)
			}

			return nil
		},
	}
}

// loadDocuments reads every path with at most limit loads in flight.
// Results keep the order of paths; a path that fails to load is returned
// with Err set rather than aborting the batch. opts apply to URLs.
func loadDocuments(ctx context.Context, paths []string, limit int, opts ...serializer.HttpReaderOption) ([]validator.Document, error) {
	docs := make([]validator.Document, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			v, err := serializer.LoadDocument(gctx, path, opts...)
			if err != nil {
				slog.Warn("failed to load spec", "source", path, "error", err)
			}
			docs[i] = validator.Document{Source: path, Value: v, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, ctx.Err()
}
