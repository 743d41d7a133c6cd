// Package generator provides utilities for template-based file generation
// with conflict resolution and rollback support.
//
// # Features
//
//   - Plain {{ .name }} substitution with strict checks (missing variables,
//     leftover placeholders, unsupported constructs)
//   - Conflict resolution (interactive, --force, --skip, --diff)
//   - Unified diffs for conflicting files
//   - Transactions with per-file atomic writes and rollback
//
// # Operations
//
// Generators build []Operation and hand them to Execute:
//
//	ops := []generator.Operation{
//	    &generator.WriteFileOp{Path: "README.md", Content: readme, Mode: 0644},
//	}
//	err := generator.Execute(ctx, ops, generator.ExecuteOptions{Resolver: r})
//
// Every operation is validated before the first byte is written. If a write
// fails, all previous writes of the run are undone: created files are
// removed and overwritten files get their previous content back.
package generator
