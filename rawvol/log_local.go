package rawvol

import (
	"fmt"
	"log"

	"github.com/natefinch/lumberjack"
)

// stdLogger prints through the standard log package, which SetLogger points at a
// rotating file if one is configured.
type stdLogger struct {
	file *lumberjack.Logger
}

var logger Logger = stdLogger{}

// LogConfig is the [logging] section of the TOML configuration.
type LogConfig struct {
	Logfile string `toml:"logfile"`
	MaxSize int    `toml:"max_log_size"` // MB
	MaxAge  int    `toml:"max_log_age"`  // days
}

// SetLogger sends log messages to a rotating log file, or leaves them on stderr
// if no file is configured.
func (c *LogConfig) SetLogger() {
	if c == nil || c.Logfile == "" {
		Infof("Sending log messages to stderr since no log file specified.\n")
		return
	}
	fmt.Printf("Sending log messages to: %s\n", c.Logfile)
	l := &lumberjack.Logger{
		Filename: c.Logfile,
		MaxSize:  c.MaxSize,
		MaxAge:   c.MaxAge,
	}
	log.SetOutput(l)
	SetLogger(stdLogger{l})
}

func (slog stdLogger) Logf(severity ModeFlag, format string, args ...interface{}) {
	log.Printf(" "+severity.String()+" "+format, args...)
}

func (slog stdLogger) Shutdown() {
	if slog.file != nil {
		log.Printf("Closing log file...\n")
		slog.file.Close()
	}
}
