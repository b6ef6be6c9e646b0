package logging

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger = logrus.New()

type CustomFormatter struct {
	SystemName string
}

// Format renders one pipe-separated line per entry, tagged with a unique id so
// a single request's entries can be pulled out of rotated files.
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := &bytes.Buffer{}
	if entry.Buffer != nil {
		b = entry.Buffer
	}

	fmt.Fprintf(b, "%s | %s | %s | id=%s | %s",
		entry.Time.Format("2006-01-02 15:04:05"),
		f.SystemName,
		strings.ToUpper(entry.Level.String()),
		uuid.NewString(),
		entry.Message)

	if entry.HasCaller() {
		fmt.Fprintf(b, " | %s:%d", entry.Caller.File, entry.Caller.Line)
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func InitLogger() {
	if _, err := os.Stat("logs"); os.IsNotExist(err) {
		err := os.Mkdir("logs", 0700)
		if err != nil {
			logrus.Fatalf("Failed to create log directory: %v", err)
		}
	}

	logFile := &lumberjack.Logger{
		Filename:   "logs/taskhub.log",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	Logger.SetOutput(logFile)

	Logger.SetFormatter(&CustomFormatter{SystemName: "taskhub-backend"})

	Logger.SetLevel(logrus.InfoLevel)
	Logger.SetReportCaller(true)
}
