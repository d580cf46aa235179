// Package runtime provides the execution context for commitgen commands.
//
// It encapsulates shared dependencies needed by commands and the dashboard:
// the repository root, the loaded configuration, the logger, and engine
// construction with model resolution.
package runtime
