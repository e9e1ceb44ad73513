package logging

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
)

// Console styles shared by all compiler output.
var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// Enumeration of the different log levels.
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only errors
	LogLevelWarning        // errors and warnings
	LogLevelVerbose        // errors, warnings, and progress messages (DEFAULT)
)

// logLevel is the log level of the process-wide reporter.
var logLevel = LogLevelVerbose

// Initialize sets the global log level by name.  Unknown names (including
// the empty string) select verbose.
func Initialize(levelName string) {
	switch levelName {
	case "silent":
		logLevel = LogLevelSilent
	case "error":
		logLevel = LogLevelError
	case "warn":
		logLevel = LogLevelWarning
	default:
		logLevel = LogLevelVerbose
	}
}

// PrintErrorMessage prints a standard Go error to the console.
func PrintErrorMessage(tag string, err error) {
	if logLevel < LogLevelError {
		return
	}
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console.
func PrintWarningMessage(tag, msg string) {
	if logLevel < LogLevelWarning {
		return
	}
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user.
func PrintInfoMessage(tag, msg string) {
	if logLevel < LogLevelVerbose {
		return
	}
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// LogFatal reports an unrecoverable condition and exits.  Fatal errors are
// displayed regardless of log level.
func LogFatal(format string, args ...interface{}) {
	ErrorStyleBG.Print("Fatal Error")
	ErrorColorFG.Println(" " + fmt.Sprintf(format, args...))
	os.Exit(1)
}
