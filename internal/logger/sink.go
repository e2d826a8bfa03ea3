// internal/logger/sink.go
package logger

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/goburrow/serial"
)

// ---- io.Writer ----

type writerSink struct {
	mu sync.Mutex
	w  io.Writer
}

// WriterSink writes one "\n"-terminated line per call. Write errors are dropped.
func WriterSink(w io.Writer) Sink {
	return &writerSink{w: w}
}

func (s *writerSink) WriteLine(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.w, text+"\n")
}

// ---- serial port ----

// DefaultBaud matches the console speed of the firmware.
const DefaultBaud = 9600

// SerialSink writes lines to a UART, CRLF terminated.
type SerialSink struct {
	mu   sync.Mutex
	port serial.Port
}

// OpenSerial opens addr at baud (8N1). baud <= 0 means DefaultBaud.
func OpenSerial(addr string, baud int) (*SerialSink, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}

	p, err := serial.Open(&serial.Config{
		Address:  addr,
		BaudRate: baud,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  time.Second,
	})
	if err != nil {
		return nil, err
	}
	return &SerialSink{port: p}, nil
}

func (s *SerialSink) WriteLine(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.port.Write([]byte(text + "\r\n"))
}

func (s *SerialSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port.Close()
}

// ---- slog bridge ----

type slogSink struct {
	logger *slog.Logger
}

// SlogSink forwards lines to an slog.Logger at the line's severity.
func SlogSink(l *slog.Logger) LevelSink {
	return &slogSink{logger: l}
}

func (s *slogSink) WriteLevel(level Level, text string) {
	sl := slog.LevelInfo
	if level == LevelError {
		sl = slog.LevelError
	}
	s.logger.Log(context.Background(), sl, text)
}

// WriteLine is used when the line did not come through Logger.
func (s *slogSink) WriteLine(text string) {
	s.WriteLevel(ParseLevel(text), text)
}

// ---- fan-out ----

type multiSink []Sink

// MultiSink writes every line to all sinks in order.
func MultiSink(sinks ...Sink) Sink {
	out := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m multiSink) WriteLine(text string) {
	for _, s := range m {
		s.WriteLine(text)
	}
}

func (m multiSink) WriteLevel(level Level, text string) {
	for _, s := range m {
		if ls, ok := s.(LevelSink); ok {
			ls.WriteLevel(level, text)
			continue
		}
		s.WriteLine(text)
	}
}
