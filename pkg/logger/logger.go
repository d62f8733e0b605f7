package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger логгер с printf-форматированием поверх logrus
// Пишет одновременно в stdout и в файл
type Logger struct {
	entry *logrus.Logger
	file  *os.File
}

// New создаёт логгер, который пишет в stdout и в файл (дописывает в конец)
func New(path, level string) (*Logger, error) {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := newLogrus(io.MultiWriter(os.Stdout, file), lvl)

	return &Logger{entry: l, file: file}, nil
}

// NewWithWriter создаёт логгер поверх произвольного writer (без файла)
func NewWithWriter(w io.Writer, level string) (*Logger, error) {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return &Logger{entry: newLogrus(w, lvl)}, nil
}

// Nop возвращает логгер, все вызовы которого ничего не делают, включая Fatal
func Nop() *Logger {
	l := newLogrus(io.Discard, logrus.PanicLevel)
	l.ExitFunc = func(int) {}

	return &Logger{entry: l}
}

// FromFunc адаптирует функцию-приёмник строк к логгеру
// При nil функции логгер ничего не делает
func FromFunc(sink func(string)) *Logger {
	if sink == nil {
		return Nop()
	}

	l := newLogrus(funcWriter(sink), logrus.DebugLevel)
	l.SetFormatter(&messageFormatter{})

	return &Logger{entry: l}
}

func newLogrus(w io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})

	return l
}

// Debug пишет отладочное сообщение
func (l *Logger) Debug(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}

// Info пишет информационное сообщение
func (l *Logger) Info(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

// Warn пишет предупреждение
func (l *Logger) Warn(format string, v ...interface{}) {
	l.entry.Warnf(format, v...)
}

// Error пишет сообщение об ошибке
func (l *Logger) Error(format string, v ...interface{}) {
	l.entry.Errorf(format, v...)
}

// Fatal пишет сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.entry.Fatalf(format, v...)
}

// Close закрывает файл лога
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}

	return l.file.Close()
}

type funcWriter func(string)

func (f funcWriter) Write(p []byte) (int, error) {
	f(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// messageFormatter выводит только текст сообщения
type messageFormatter struct{}

func (f *messageFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return []byte(entry.Message + "\n"), nil
}
