// Package logger is the process-wide leveled logger used by the server,
// the moderation CLI and the access-log middleware.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[Level]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelFatal: "fatal",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return levelNames[LevelInfo]
}

// ParseLevel maps a LOG_LEVEL value to a Level. "warning" is accepted for warn.
func ParseLevel(s string) (Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return LevelWarn, true
	}
	for l, name := range levelNames {
		if name == s {
			return l, true
		}
	}
	return LevelInfo, false
}

var (
	mu    sync.RWMutex
	sink  = log.New(os.Stdout, "", 0)
	level = LevelInfo
	exit  = os.Exit
)

// SetOutput redirects log lines, e.g. to stderr for the CLI.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	sink = log.New(w, "", 0)
}

// Init sets the minimum level. Unknown values fall back to info.
func Init(s string) {
	l, _ := ParseLevel(s)
	mu.Lock()
	level = l
	mu.Unlock()
}

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	return level.String()
}

func logf(l Level, format string, v ...interface{}) {
	mu.RLock()
	out, threshold := sink, level
	mu.RUnlock()
	if l < threshold && l != LevelFatal {
		return
	}
	prefix := fmt.Sprintf("%s [%s] ", time.Now().Format(time.RFC3339), strings.ToUpper(l.String()))
	out.Print(prefix + fmt.Sprintf(format, v...))
}

func Debugf(format string, v ...interface{}) { logf(LevelDebug, format, v...) }
func Infof(format string, v ...interface{})  { logf(LevelInfo, format, v...) }
func Warnf(format string, v ...interface{})  { logf(LevelWarn, format, v...) }
func Errorf(format string, v ...interface{}) { logf(LevelError, format, v...) }

// Fatalf logs regardless of level and exits with status 1.
func Fatalf(format string, v ...interface{}) {
	logf(LevelFatal, format, v...)
	exit(1)
}

// Println logs at info level.
func Println(v ...interface{}) {
	logf(LevelInfo, "%s", strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}
