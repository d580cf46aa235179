// Package config manages commitgen configuration persistence.
//
// It handles:
//   - The repository-scoped configuration file stored inside .git
//   - String-keyed access for the config command
//   - Validation of the generation knobs
package config
