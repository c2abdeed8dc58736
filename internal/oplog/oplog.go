// Package oplog provides append-only operation logging for assignment
// sessions.
package oplog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	// logFileMode defines the permissions for the operation log file.
	logFileMode = 0o644
	// logDirMode defines the permissions for the operation log directory.
	logDirMode = 0o755
)

// Operation names recorded in the log.
const (
	// OpAssignRun records an auto-assign engine run.
	OpAssignRun = "assign.run"
	// OpReset records a full assignment reset.
	OpReset = "state.reset"
	// OpRoomToggle records a manual per-room toggle.
	OpRoomToggle = "room.toggle"
	// OpRoomAvailability records a room service-state change.
	OpRoomAvailability = "room.availability"
	// OpTeamActive records a team activation change.
	OpTeamActive = "team.active"
)

// Logger appends operation entries to a log file.
type Logger struct {
	path     string
	warnings io.Writer
	now      func() time.Time
	mu       sync.Mutex
}

// Field represents a logfmt key/value pair.
type Field struct {
	Key   string
	Value string
}

// Entry captures the required operation log fields and any optional fields.
type Entry struct {
	RunID  string
	Op     string
	Fields []Field
}

// NewLogger builds an operation logger writing to the given path.
func NewLogger(path string, warnings io.Writer) (*Logger, error) {
	if path == "" {
		return nil, errors.New("operation log path is required")
	}
	if warnings == nil {
		warnings = os.Stderr
	}
	return &Logger{
		path:     path,
		warnings: warnings,
		now:      time.Now,
	}, nil
}

// Log writes an operation entry to the log file.
func (logger *Logger) Log(entry Entry) error {
	if logger == nil {
		return errors.New("operation logger is nil")
	}
	logger.mu.Lock()
	defer logger.mu.Unlock()

	line, err := logger.formatEntry(entry)
	if err != nil {
		logger.warnf("operation log entry rejected: %v", err)
		return err
	}
	if err := logger.appendLine(line); err != nil {
		logger.warnf("operation log write failed for %s: %v", logger.path, err)
		return err
	}
	return nil
}

// LogAssignRun records an auto-assign run and its warning count.
func (logger *Logger) LogAssignRun(runID string, teams int, assigned int, leftover int, warnings int) error {
	return logger.Log(Entry{
		RunID: runID,
		Op:    OpAssignRun,
		Fields: []Field{
			{Key: "teams", Value: fmt.Sprintf("%d", teams)},
			{Key: "assigned", Value: fmt.Sprintf("%d", assigned)},
			{Key: "leftover", Value: fmt.Sprintf("%d", leftover)},
			{Key: "warnings", Value: fmt.Sprintf("%d", warnings)},
		},
	})
}

// LogReset records a full reset.
func (logger *Logger) LogReset(runID string, pool int) error {
	return logger.Log(Entry{
		RunID: runID,
		Op:    OpReset,
		Fields: []Field{
			{Key: "pool", Value: fmt.Sprintf("%d", pool)},
		},
	})
}

// LogRoomToggle records a manual toggle of one room on one team.
func (logger *Logger) LogRoomToggle(runID string, teamID string, roomNumber string, assigned bool) error {
	action := "unassigned"
	if assigned {
		action = "assigned"
	}
	return logger.Log(Entry{
		RunID: runID,
		Op:    OpRoomToggle,
		Fields: []Field{
			{Key: "team", Value: teamID},
			{Key: "room", Value: roomNumber},
			{Key: "action", Value: action},
		},
	})
}

// LogRoomAvailability records a room being taken in or out of service.
func (logger *Logger) LogRoomAvailability(runID string, roomNumber string, available bool) error {
	state := "out-of-service"
	if available {
		state = "in-service"
	}
	return logger.Log(Entry{
		RunID: runID,
		Op:    OpRoomAvailability,
		Fields: []Field{
			{Key: "room", Value: roomNumber},
			{Key: "state", Value: state},
		},
	})
}

// formatEntry renders an operation entry in logfmt-style order.
func (logger *Logger) formatEntry(entry Entry) (string, error) {
	if entry.RunID == "" {
		return "", errors.New("run id is required")
	}
	if entry.Op == "" {
		return "", errors.New("op is required")
	}
	now := logger.now
	if now == nil {
		now = time.Now
	}

	ts := now().UTC().Format(time.RFC3339)
	fields := []string{
		formatField("ts", ts),
		formatField("run", entry.RunID),
		formatField("op", entry.Op),
	}
	for _, field := range entry.Fields {
		if field.Value == "" {
			continue
		}
		if field.Key == "" {
			return "", errors.New("field key is required")
		}
		fields = append(fields, formatField(field.Key, field.Value))
	}
	return strings.Join(fields, " "), nil
}

// formatField encodes a logfmt key/value pair.
func formatField(key string, value string) string {
	encoded := sanitizeValue(value)
	if needsQuoting(encoded) {
		return fmt.Sprintf(`%s="%s"`, key, escapeLogfmt(encoded))
	}
	return fmt.Sprintf("%s=%s", key, encoded)
}

// sanitizeValue ensures values stay single-line.
func sanitizeValue(value string) string {
	value = strings.ReplaceAll(value, "\n", `\n`)
	return strings.ReplaceAll(value, "\r", `\r`)
}

// needsQuoting reports whether the value needs logfmt quoting.
func needsQuoting(value string) bool {
	if value == "" {
		return true
	}
	for _, r := range value {
		if r == ' ' || r == '\t' || r == '\n' || r == '=' || r == '"' {
			return true
		}
	}
	return false
}

// escapeLogfmt escapes characters that must be quoted in logfmt values.
func escapeLogfmt(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `"`, `\"`)
}

// appendLine writes the log entry to the operation log file.
func (logger *Logger) appendLine(line string) error {
	if err := os.MkdirAll(filepath.Dir(logger.path), logDirMode); err != nil {
		return err
	}
	file, err := os.OpenFile(logger.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFileMode)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := file.WriteString(line + "\n"); err != nil {
		return err
	}
	return nil
}

// warnf writes a non-fatal logging problem to the warnings writer.
func (logger *Logger) warnf(format string, args ...any) {
	fmt.Fprintf(logger.warnings, format+"\n", args...)
}
