// Package fusemcp translates declarative tool calls into Fusion 360
// Python scripts. A tool call names a catalog tool and supplies raw
// arguments; the engine validates them against the tool's parameter
// schema, fills defaults, expands the tool's fragment template and wraps
// the result in the fixed host scaffold.
//
// The catalog is loaded once at startup and never mutated, so one Engine
// safely serves the bundled HTTP, line-protocol and MCP transports
// concurrently.
package fusemcp
