// Package driving holds the use-case interfaces the CLI, TUI and MCP
// adapters call into: session, search, questions, answers, tags, users,
// settings and history. internal/core/services implements all of them.
package driving
