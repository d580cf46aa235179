package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If COMMITGEN_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.commitgen/logs/commitgen.log
func GetLogFilePath() string {
	if customPath := os.Getenv("COMMITGEN_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		return "commitgen.log"
	}

	return filepath.Join(homeDir, ".commitgen", "logs", "commitgen.log")
}
