package rawvol

import (
	"fmt"
	"time"
)

// ModeFlag is the severity of a log message and the threshold for printing one.
type ModeFlag uint

const (
	DebugMode ModeFlag = iota
	InfoMode
	WarningMode
	ErrorMode
	CriticalMode
	SilentMode
)

var modeNames = [...]string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL", "SILENT"}

func (m ModeFlag) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode %d", uint(m))
}

var (
	// Verbose prints Debug messages whatever the mode, short of SilentMode.
	Verbose bool

	// mode is the minimum severity of messages that get logged.
	mode = InfoMode
)

// Logger records messages that passed the severity threshold.
type Logger interface {
	// Logf formats its arguments analogous to fmt.Printf and records the text at
	// the given severity.
	Logf(severity ModeFlag, format string, args ...interface{})

	// Shutdown makes sure logs are closed.
	Shutdown()
}

// SetLogMode sets the severity required for a log message to be printed.
// For example, SetLogMode(rawvol.WarningMode) will log any calls using
// Warningf, Errorf, or Criticalf.  To turn off all logging, use SilentMode.
func SetLogMode(newMode ModeFlag) {
	mode = newMode
}

// LogMode returns the current severity threshold.
func LogMode() ModeFlag {
	return mode
}

// SetLogger replaces the logger and returns the previous one.
func SetLogger(l Logger) Logger {
	prev := logger
	logger = l
	return prev
}

func enabled(severity ModeFlag) bool {
	if mode == SilentMode {
		return false
	}
	return severity >= mode || (severity == DebugMode && Verbose)
}

func logf(severity ModeFlag, format string, args []interface{}) {
	if enabled(severity) {
		logger.Logf(severity, format, args...)
	}
}

func Debugf(format string, args ...interface{})    { logf(DebugMode, format, args) }
func Infof(format string, args ...interface{})     { logf(InfoMode, format, args) }
func Warningf(format string, args ...interface{})  { logf(WarningMode, format, args) }
func Errorf(format string, args ...interface{})    { logf(ErrorMode, format, args) }
func Criticalf(format string, args ...interface{}) { logf(CriticalMode, format, args) }

// Shutdown closes any log file set by LogConfig.SetLogger.
func Shutdown() {
	logger.Shutdown()
}

// TimeLog appends the time elapsed since its creation to messages.
//
//	timedLog := rawvol.NewTimeLog()
//	...
//	timedLog.Debugf("Read %d rows", n) // logs "Read 10 rows: 3.2ms"
type TimeLog struct {
	start time.Time
}

func NewTimeLog() TimeLog {
	return TimeLog{time.Now()}
}

// Elapsed returns the time since the TimeLog was created.
func (t TimeLog) Elapsed() time.Duration {
	return time.Since(t.start)
}

func (t TimeLog) logf(severity ModeFlag, format string, args []interface{}) {
	if enabled(severity) {
		logger.Logf(severity, format+": %s\n", append(args, t.Elapsed())...)
	}
}

func (t TimeLog) Debugf(format string, args ...interface{})   { t.logf(DebugMode, format, args) }
func (t TimeLog) Infof(format string, args ...interface{})    { t.logf(InfoMode, format, args) }
func (t TimeLog) Warningf(format string, args ...interface{}) { t.logf(WarningMode, format, args) }
func (t TimeLog) Errorf(format string, args ...interface{})   { t.logf(ErrorMode, format, args) }
