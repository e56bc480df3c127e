// Package script is the fusemcp core: it validates and completes tool
// call parameters against the catalog, derives template-ready values, and
// expands per-tool fragment templates into a complete, host-compatible
// script program.
//
// Every operation is a pure single-pass pipeline. The only shared state is
// the read-only catalog and template table, so a Generator may serve
// concurrent callers without locking.
package script
