// Package cli implements the command-line interface for petspec, the pet
// specification validator.
//
// # Overview
//
// The petspec CLI checks M3 pet specification documents against the pet spec
// schema and the newest supported spec version. It is meant for asset
// authors and for CI pipelines that publish pet bundles.
//
// # Commands
//
// validate - Validate pet spec documents:
//
//	petspec validate [--format json|yaml|table] [--output FILE] [--fail-on-error]
//	                 [--concurrency N] [--require CONSTRAINT] [--timeout D]
//	                 [--connect-timeout D] [--max-bytes N] [--insecure-skip-verify] PATH...
//
// Loads each PATH (local file, HTTP/HTTPS URL or "-" for stdin) concurrently,
// validates every document and writes one ValidationResult. Per document the
// result reports passed, failed (with the first violation and an optional
// "did you mean" suggestion) or skipped (could not be loaded).
//
// Remote documents are fetched with the petspec User-Agent, bounded by
// --timeout, --connect-timeout and --max-bytes.
//
// version - Print build information:
//
//	petspec version [--format json|yaml|table]
//
// # Global Flags
//
//	--log-level    Logging level: debug, info, warn, error (default: info)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Formats
//
// Table (default):
//   - One row per document plus a total row
//   - Suitable for terminal viewing
//
// JSON:
//   - Machine-parseable, compact
//   - Suitable for programmatic consumption
//
// YAML:
//   - Human-readable, preserves structure
//
// # Usage Examples
//
// Validate every spec in a directory:
//
//	petspec validate pets/*.yaml
//
// Fail a CI job on any rejected spec:
//
//	petspec validate --fail-on-error --format json -o result.json pets/*.json
//
// Require specs written for 0.1 or later:
//
//	petspec validate --require ">= 0.1.0" rex.yaml
//
// # Environment Variables
//
//	PETSPEC_LOG_LEVEL  Set logging verbosity (debug, info, warn, error)
//	PETSPEC_FORMAT     Default output format (json, yaml, table)
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, failed specs with --fail-on-error)
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized packages:
//   - pkg/validator - Batch validation and results
//   - pkg/petspec - Pet spec rules
//   - pkg/serializer - Input loading and output formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/m3org/petspec/pkg/cli.version=1.0.0'"
package cli
