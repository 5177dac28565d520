package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// New builds the application logger: JSON formatted, stdout, plus a hook that
// appends every entry to a per-day JSON-lines file under dir. The logger is
// injected into components rather than used through package-level state.
func New(level, dir string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	switch level {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		log.AddHook(newDailyFileHook(dir))
	}

	return log, nil
}

// dailyFileHook appends entries to <dir>/YYYY-MM-DD.log, rolling at midnight.
type dailyFileHook struct {
	mu        sync.Mutex
	dir       string
	day       string
	file      *os.File
	formatter logrus.Formatter
}

func newDailyFileHook(dir string) *dailyFileHook {
	return &dailyFileHook{
		dir: dir,
		formatter: &logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		},
	}
}

func (h *dailyFileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *dailyFileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	day := entry.Time.Format("2006-01-02")
	if h.file == nil || day != h.day {
		if h.file != nil {
			h.file.Close()
		}
		f, err := os.OpenFile(DayFile(h.dir, day), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		h.file = f
		h.day = day
	}

	_, err = h.file.Write(line)
	return err
}

// DayFile returns the log file path for a YYYY-MM-DD date.
func DayFile(dir, date string) string {
	return filepath.Join(dir, date+".log")
}

// ReadDay returns the raw JSON lines of one day's log, newest first. A missing
// file yields an empty slice, matching an empty day.
func ReadDay(dir, date string) ([]string, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	data, err := os.ReadFile(DayFile(dir, date))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var lines []string
	start := 0
	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			if i > start {
				lines = append(lines, string(data[start:i]))
			}
			start = i + 1
		}
	}

	// Newest entries first
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return lines, nil
}
