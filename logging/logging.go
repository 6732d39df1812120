package logging

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

var debugMode bool

// SetupLogging configures logging.
// If filename is empty, logging is disabled (except log.Fatal/panic).
// If filename is set, logs go to that file and Bubble Tea logs are enabled too.
func SetupLogging(filename string) (cleanup func(), err error) {
	if filename == "" {
		debugMode = false
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	tf, err := tea.LogToFile(filename, "debug")
	if err != nil {
		f.Close()
		return nil, err
	}
	debugMode = true

	cleanup = func() {
		tf.Close()
		f.Close()
	}
	return cleanup, nil
}

// IsDebugMode reports whether a debug log file was configured.
func IsDebugMode() bool {
	return debugMode
}

func output(level, msg string) {
	// calldepth 3 so Lshortfile points at the caller of Debugf/Infof/...
	_ = log.Output(3, level+" "+msg)
}

func Debug(msg string) {
	output("DEBUG", msg)
}

func Debugf(format string, args ...any) {
	output("DEBUG", fmt.Sprintf(format, args...))
}

func Infof(format string, args ...any) {
	output("INFO", fmt.Sprintf(format, args...))
}

func Warnf(format string, args ...any) {
	output("WARN", fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...any) {
	output("ERROR", fmt.Sprintf(format, args...))
}

// Std routes third-party loggers (resty) into the same log file.
var Std = stdLogger{}

type stdLogger struct{}

func (stdLogger) Errorf(format string, v ...any) { output("ERROR", fmt.Sprintf(format, v...)) }
func (stdLogger) Warnf(format string, v ...any)  { output("WARN", fmt.Sprintf(format, v...)) }
func (stdLogger) Debugf(format string, v ...any) { output("DEBUG", fmt.Sprintf(format, v...)) }
