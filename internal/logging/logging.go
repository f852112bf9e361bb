// Package logging configures the process-wide logrus logger. The
// original project's formatter comes from an internal module
// (git.fiblab.net/utils/logrus-easy-formatter) that isn't a fetchable
// public dependency, so moduleFormatter reimplements its
// "[module] [time] [level] message" layout directly against
// logrus.Formatter.
package logging

import (
	"bytes"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Levels maps the -log-level flag's accepted strings to logrus levels,
// grounded on the teacher's own LOG_LEVELS table.
var Levels = map[string]logrus.Level{
	"debug": logrus.DebugLevel,
	"info":  logrus.InfoLevel,
	"warn":  logrus.WarnLevel,
	"error": logrus.ErrorLevel,
	"fatal": logrus.FatalLevel,
	"panic": logrus.PanicLevel,
}

// Configure installs the module formatter and sets the level named by
// levelName. An unrecognised level is an error, not a silent fallback —
// the caller should treat it as a misuse of the flag.
func Configure(levelName string) error {
	logrus.SetFormatter(&moduleFormatter{timestampFormat: "2006-01-02 15:04:05.0000"})
	level, ok := Levels[levelName]
	if !ok {
		return fmt.Errorf("invalid log level: %q", levelName)
	}
	logrus.SetLevel(level)
	return nil
}

// moduleFormatter renders "[transportcatalogue] [time] [level] msg\n",
// with any structured fields appended as key=value pairs.
type moduleFormatter struct {
	timestampFormat string
}

func (f *moduleFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "[transportcatalogue] [%s] [%s] %s",
		entry.Time.Format(f.timestampFormat),
		entry.Level.String(),
		entry.Message,
	)
	for k, v := range entry.Data {
		fmt.Fprintf(&buf, " %s=%v", k, v)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
