// Package cli provides common utilities for the optistream command-line
// tool.
//
// This package includes:
//   - Configuration management (kubectl-style contexts)
//   - Output formatting (JSON, YAML, raw)
//   - A gojq-backed output filter
//   - Terminal styles for stage progress lines
//
// Configuration is stored in ~/.optistream/config.yaml; each context names
// a pipeline server plus the app and user the queries run under.
package cli
