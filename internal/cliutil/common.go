// Package cliutil provides the small, shared CLI ambient stack (version
// banner, structured logger, exit helpers) used by cmd/sflheap.
package cliutil

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"
)

const (
	Version   = "0.1.0"
	BuildDate = "2026-07-31"
)

// VersionInfo is structured version/build information for --version.
type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
}

// GetVersionInfo returns the running binary's version/build information.
func GetVersionInfo() *VersionInfo {
	return &VersionInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// PrintVersion prints version information for toolName, as JSON if
// requested.
func PrintVersion(toolName string, jsonOutput bool) {
	info := GetVersionInfo()

	if jsonOutput {
		data, err := json.MarshalIndent(map[string]interface{}{
			"tool":         toolName,
			"version_info": info,
		}, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to marshal version info to JSON: %v\n", err)
		} else {
			fmt.Println(string(data))
			return
		}
	}

	fmt.Printf("%s v%s\n", toolName, info.Version)
	fmt.Printf("Build Date: %s\n", info.BuildDate)
	fmt.Printf("Go Version: %s\n", info.GoVersion)
	fmt.Printf("Platform: %s/%s\n", info.Platform, info.Arch)
}

// ExitWithError prints a formatted error to stderr and exits with code 1.
func ExitWithError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// Logger provides leveled logging for the REPL/batch runner, gated by
// Verbose/DebugMode.
type Logger struct {
	Verbose   bool
	DebugMode bool
}

func NewLogger(verbose, debug bool) *Logger {
	return &Logger{Verbose: verbose, DebugMode: debug}
}

func (l *Logger) Info(format string, args ...interface{}) {
	if l.Verbose {
		fmt.Printf("[INFO] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.DebugMode {
		fmt.Printf("[DEBUG] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	}
}

func (l *Logger) Warn(format string, args ...interface{}) {
	fmt.Printf("[WARN] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...interface{}) {
	fmt.Printf("[ERROR] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

// WrapForDisplay reflows lines of s longer than the controlling terminal's
// column width, breaking at space boundaries with a hanging indent. It
// queries TermWidth itself and returns s unchanged when the width can't be
// determined (not a TTY, ioctl failure, Windows). This is purely an
// interactive display convenience for the REPL: it never runs on text bound
// for a script's non-interactive output, so it cannot affect dump
// byte-stability there.
func WrapForDisplay(s string) string {
	width, ok := TermWidth()
	if !ok || width <= 8 {
		return s
	}

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if len(line) <= width {
			continue
		}
		lines[i] = wrapLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func wrapLine(line string, width int) string {
	const indent = "    "
	words := strings.Split(line, " ")
	var b strings.Builder
	col := 0
	for i, w := range words {
		if i > 0 {
			if col+1+len(w) > width {
				b.WriteString("\n")
				b.WriteString(indent)
				col = len(indent)
			} else {
				b.WriteString(" ")
				col++
			}
		}
		b.WriteString(w)
		col += len(w)
	}
	return b.String()
}
