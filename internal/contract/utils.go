package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Color variables for console output.
var (
	IncreaseColor = color.New(color.FgRed, color.Bold) // increaseColor flags lesions that grew past the threshold.
	DecreaseColor = color.New(color.FgGreen)           // decreaseColor flags lesions that shrank past the threshold.
	StableColor   = color.New(color.FgYellow)          // stableColor flags lesions within the stability band.
	SurgicalColor = color.New(color.FgCyan)            // surgicalColor flags reductions explained by surgery.
)

// GetColorStatus returns a colored status label for console output (table).
// The status text itself is unchanged; only the color varies by prefix.
func GetColorStatus(status string) string {
	switch {
	case strings.HasPrefix(status, "Aumentou"):
		return IncreaseColor.Sprint(status)
	case strings.Contains(status, "cirúrgica"):
		return SurgicalColor.Sprint(status)
	case strings.HasPrefix(status, "Reduziu"):
		return DecreaseColor.Sprint(status)
	default: // "Estável"
		return StableColor.Sprint(status)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for the record store.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".lesiontrack.db"
	}
	return filepath.Join(homeDir, ".lesiontrack.db")
}

// TruncateName truncates a lesion name to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 so there is room for the "..." and at least one rune.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
