// Package diag defines the diagnostic model shared by all pipeline stages.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced
//     by the lexer, parser and evaluator.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting layers.
//   - Carry a terminal diagnostic through Go error returns (Error), so every
//     stage can stop with a value that still knows its source file and span.
//
// # Scope
//
// Package diag does not perform any formatting of source snippets, IO, or CLI
// integration. Rendering lives in internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier (codes.go) with a stable string form
//     such as LEX1001 or SYN2001.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – the byte span pointing at the issue.
//   - Label – text attached to the primary span in rendered output.
//   - Notes – optional secondary spans/messages.
//
// # Emitting diagnostics
//
// Stages construct the diagnostic with NewError and return it wrapped in
// *Error. When a Reporter is configured they also Report it, which is how
// the driver fills a Bag for rendering. Both paths carry the same record.
package diag
