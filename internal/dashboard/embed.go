// Package dashboard serves a local web view of the staged snapshot, with
// suggestion and commit endpoints backed by the same engine, cache and git
// plumbing the CLI uses.
package dashboard

import _ "embed"

// indexHTML is the single-page dashboard UI, embedded so the binary stays
// self-contained.
//
//go:embed index.html
var indexHTML []byte
