package debug

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	t.Run("BasicLogging", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "TEST", FlagLevel|FlagPrefix)

		logger.Info("Hello %s", "World")

		output := buf.String()
		if !strings.Contains(output, "level=INFO") {
			t.Errorf("Missing log level: %s", output)
		}
		if !strings.Contains(output, "component=TEST") {
			t.Errorf("Missing prefix: %s", output)
		}
		if !strings.Contains(output, `msg="Hello World"`) {
			t.Errorf("Missing message: %s", output)
		}
		if strings.Contains(output, "time=") {
			t.Errorf("Time should be omitted without FlagTime: %s", output)
		}
	})

	t.Run("LogLevels", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", FlagLevel)
		logger.SetLevel(LogLevelWarn)

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")
		logger.Error("error message")

		output := buf.String()
		if strings.Contains(output, "debug message") {
			t.Error("Debug message should not be logged")
		}
		if strings.Contains(output, "info message") {
			t.Error("Info message should not be logged")
		}
		if !strings.Contains(output, "warn message") {
			t.Error("Warn message should be logged")
		}
		if !strings.Contains(output, "error message") {
			t.Error("Error message should be logged")
		}
	})

	t.Run("Off", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", DefaultFlags)
		logger.SetLevel(LogLevelOff)

		logger.Error("should not appear")

		if buf.Len() > 0 {
			t.Errorf("LogLevelOff should silence everything, got %s", buf.String())
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", DefaultFlags)
		logger.SetEnabled(false)

		logger.Info("should not appear")

		if buf.Len() > 0 {
			t.Error("Disabled logger should not write")
		}
	})

	t.Run("FileInfo", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", FlagShortFile|FlagLevel)

		logger.Info("test")

		output := buf.String()
		if !strings.Contains(output, "source=logger_test.go:") {
			t.Errorf("Missing file info in output: %s", output)
		}
	})

	t.Run("With", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", FlagLevel).With("instance", "abc", "param", 3)

		logger.Warn("queue full")

		output := buf.String()
		if !strings.Contains(output, "instance=abc") || !strings.Contains(output, "param=3") {
			t.Errorf("Missing attributes: %s", output)
		}
	})

	t.Run("Fatal", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", FlagLevel)

		defer func() {
			if recover() == nil {
				t.Error("Fatal should panic")
			}
			if !strings.Contains(buf.String(), "level=FATAL") {
				t.Errorf("Fatal level not rendered: %s", buf.String())
			}
		}()
		logger.Fatal("boom")
	})

	t.Run("ConditionalLogging", func(t *testing.T) {
		var buf bytes.Buffer
		SetOutput(&buf)
		SetLevel(LogLevelDebug)
		defer SetLevel(LogLevelInfo)

		DebugIf(true, "should appear")
		DebugIf(false, "should not appear")

		output := buf.String()
		if !strings.Contains(output, "should appear") {
			t.Error("Conditional true message missing")
		}
		if strings.Contains(output, "should not appear") {
			t.Error("Conditional false message should not appear")
		}
	})
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevelFatal, "FATAL"},
		{LogLevelOff, "OFF"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
		}
		if tt.level > LogLevelOff {
			continue
		}
		parsed, err := ParseLevel(strings.ToLower(tt.expected))
		if err != nil || parsed != tt.level {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.expected, parsed, err)
		}
	}

	if _, err := ParseLevel("chatty"); err == nil {
		t.Error("ParseLevel(chatty) should fail")
	}
}

func BenchmarkLogger(b *testing.B) {
	logger := New(bytes.NewBuffer(nil), "BENCH", DefaultFlags)

	b.Run("Enabled", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			logger.Info("Benchmark message %d", i)
		}
	})

	b.Run("BelowLevel", func(b *testing.B) {
		logger.SetLevel(LogLevelError)
		for i := 0; i < b.N; i++ {
			logger.Info("Benchmark message %d", i)
		}
	})
}
