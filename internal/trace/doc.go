// Package trace records what a tally run did, from the command down to
// every expression.
//
// Work is wrapped in spans (begin/end pairs) or marked with points. Each
// event belongs to a scope:
//
//   - run: the CLI command
//   - file: one input
//   - stage: tokenize, parse or eval over a file
//   - expr: one token, tree or value, with its source position
//   - error: the error that stopped a stage
//
// The level picks the finest scope written; errors pass at every level
// except off. Events are written as they happen (Stream) or kept in
// memory and dumped when the command ends (Ring). Every event carries the
// run ID so that NDJSON from concurrent runs can be told apart.
//
//	tally eval --trace=- --trace-level=expr a.calc
package trace
