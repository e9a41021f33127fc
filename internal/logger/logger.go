package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Leveled is a thin Printf front over a logrus level.
type Leveled struct {
	base  *logrus.Logger
	level logrus.Level
}

// Printf logs at the level this logger was created for.
func (l Leveled) Printf(format string, args ...interface{}) {
	l.base.Logf(l.level, format, args...)
}

var (
	base = newBase(os.Stderr, logrus.InfoLevel)

	Info    = Leveled{base: base, level: logrus.InfoLevel}
	Warn    = Leveled{base: base, level: logrus.WarnLevel}
	Debug   = Leveled{base: base, level: logrus.DebugLevel}
	Verbose = Leveled{base: base, level: logrus.TraceLevel}
	Error   = Leveled{base: base, level: logrus.ErrorLevel}
	Always  = Leveled{base: base, level: logrus.InfoLevel} // Always logs regardless of log level

	// Current log level for filtering
	currentLogLevel = "info"
)

func newBase(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

func Init() error {
	return InitWithLevel("info")
}

func InitWithLevel(logLevel string) error {
	return InitWithConfig(logLevel, "surface.log")
}

// InitWithConfig routes every level to logFilePath, filtered by logLevel.
// Errors are also echoed to stderr. An empty path logs to stderr only.
func InitWithConfig(logLevel, logFilePath string) error {
	currentLogLevel = strings.ToLower(logLevel)
	level := ParseLevel(currentLogLevel)

	var out io.Writer = os.Stderr
	var always io.Writer = os.Stderr
	if logFilePath != "" {
		logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		out = logFile
		always = logFile
	}

	leveled := newBase(out, level)
	if logFilePath != "" {
		leveled.AddHook(&stderrHook{formatter: &logrus.TextFormatter{FullTimestamp: true}})
	}
	alwaysBase := newBase(always, logrus.InfoLevel)

	Info = Leveled{base: leveled, level: logrus.InfoLevel}
	Warn = Leveled{base: leveled, level: logrus.WarnLevel}
	Debug = Leveled{base: leveled, level: logrus.DebugLevel}
	Verbose = Leveled{base: leveled, level: logrus.TraceLevel}
	Error = Leveled{base: leveled, level: logrus.ErrorLevel}
	Always = Leveled{base: alwaysBase, level: logrus.InfoLevel}
	base = leveled

	return nil
}

// Level reports the configured level name.
func Level() string {
	return currentLogLevel
}

// ParseLevel maps the config level names onto logrus levels. "verbose" is
// trace; unknown names fall back to info.
func ParseLevel(name string) logrus.Level {
	if name == "verbose" {
		return logrus.TraceLevel
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// stderrHook mirrors error entries to stderr when the main sink is a file.
type stderrHook struct {
	formatter logrus.Formatter
}

func (h *stderrHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

func (h *stderrHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = os.Stderr.Write(line)
	return err
}
