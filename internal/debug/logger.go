package debug

import (
	"fmt"
	"os"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// Logger represents the centralized logging system. It keeps a
// circular buffer of recent entries for introspection by the debugger
// and tests, and fans every enabled entry out to a charmbracelet/log
// sink for leveled, styled terminal output.
type Logger struct {
	// Circular buffer for log entries
	entries    []LogEntry
	entriesMu  sync.RWMutex
	maxEntries int
	writeIndex int
	entryCount int

	// Component enable/disable flags
	componentEnabled map[Component]bool
	componentMu      sync.RWMutex

	// Minimum log level (entries more verbose than this level are filtered)
	minLevel LogLevel
	levelMu  sync.RWMutex

	sink *charmlog.Logger

	// Channel for thread-safe logging
	logChan chan LogEntry

	// Shutdown channel
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewLogger creates a new logger instance that writes to stderr.
func NewLogger(maxEntries int) *Logger {
	return NewLoggerWithSink(maxEntries, charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
	}))
}

// NewLoggerWithSink creates a new logger instance backed by a caller-provided
// charmbracelet/log logger, so tests and cmd/ entrypoints can redirect output.
func NewLoggerWithSink(maxEntries int, sink *charmlog.Logger) *Logger {
	if maxEntries < 100 {
		maxEntries = 100 // Minimum buffer size
	}

	logger := &Logger{
		entries:          make([]LogEntry, maxEntries),
		maxEntries:       maxEntries,
		componentEnabled: make(map[Component]bool),
		minLevel:         LogLevelInfo,
		sink:             sink,
		logChan:          make(chan LogEntry, 1000),
		shutdown:         make(chan struct{}),
	}

	// Each component can be switched off; motion starts disabled.
	logger.componentEnabled[ComponentSequencer] = true
	logger.componentEnabled[ComponentVideo] = true
	logger.componentEnabled[ComponentAudio] = true
	logger.componentEnabled[ComponentMotion] = false
	logger.componentEnabled[ComponentBlocks] = true
	logger.componentEnabled[ComponentSystem] = true

	logger.wg.Add(1)
	go logger.processLogs()

	return logger
}

// processLogs processes log entries from the channel
func (l *Logger) processLogs() {
	defer l.wg.Done()

	for {
		select {
		case entry := <-l.logChan:
			l.addEntry(entry)
		case <-l.shutdown:
			for {
				select {
				case entry := <-l.logChan:
					l.addEntry(entry)
				default:
					return
				}
			}
		}
	}
}

// addEntry adds a log entry to the circular buffer and forwards it to the sink.
func (l *Logger) addEntry(entry LogEntry) {
	l.entriesMu.Lock()
	l.entries[l.writeIndex] = entry
	l.writeIndex = (l.writeIndex + 1) % l.maxEntries
	if l.entryCount < l.maxEntries {
		l.entryCount++
	}
	l.entriesMu.Unlock()

	if l.sink == nil {
		return
	}
	fields := make([]interface{}, 0, len(entry.Data)*2+2)
	fields = append(fields, "component", string(entry.Component))
	for k, v := range entry.Data {
		fields = append(fields, k, v)
	}
	switch entry.Level {
	case LogLevelError:
		l.sink.Error(entry.Message, fields...)
	case LogLevelWarning:
		l.sink.Warn(entry.Message, fields...)
	case LogLevelDebug, LogLevelTrace:
		l.sink.Debug(entry.Message, fields...)
	default:
		l.sink.Info(entry.Message, fields...)
	}
}

// Log logs a message with the specified component and level
func (l *Logger) Log(component Component, level LogLevel, message string, data map[string]interface{}) {
	l.componentMu.RLock()
	enabled := l.componentEnabled[component]
	l.componentMu.RUnlock()
	if !enabled {
		return
	}

	l.levelMu.RLock()
	minLevel := l.minLevel
	l.levelMu.RUnlock()
	if level > minLevel {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Component: component,
		Level:     level,
		Message:   message,
		Data:      data,
	}

	select {
	case l.logChan <- entry:
	default:
		// Channel is full; drop rather than block the tick loop.
	}
}

// Logf logs a formatted message
func (l *Logger) Logf(component Component, level LogLevel, format string, args ...interface{}) {
	l.Log(component, level, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) LogSequencer(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentSequencer, level, message, data)
}

func (l *Logger) LogVideo(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentVideo, level, message, data)
}

func (l *Logger) LogAudio(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentAudio, level, message, data)
}

func (l *Logger) LogMotion(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentMotion, level, message, data)
}

func (l *Logger) LogBlocks(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentBlocks, level, message, data)
}

func (l *Logger) LogSystem(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentSystem, level, message, data)
}

// GetEntries returns a copy of all log entries (oldest first)
func (l *Logger) GetEntries() []LogEntry {
	l.entriesMu.RLock()
	defer l.entriesMu.RUnlock()

	if l.entryCount == 0 {
		return []LogEntry{}
	}

	entries := make([]LogEntry, l.entryCount)
	if l.entryCount < l.maxEntries {
		copy(entries, l.entries[:l.entryCount])
	} else {
		for i := 0; i < l.entryCount; i++ {
			idx := (l.writeIndex + i) % l.maxEntries
			entries[i] = l.entries[idx]
		}
	}
	return entries
}

// GetRecentEntries returns the most recent N entries
func (l *Logger) GetRecentEntries(count int) []LogEntry {
	allEntries := l.GetEntries()
	if count >= len(allEntries) {
		return allEntries
	}
	return allEntries[len(allEntries)-count:]
}

// Clear clears all log entries
func (l *Logger) Clear() {
	l.entriesMu.Lock()
	defer l.entriesMu.Unlock()
	l.entryCount = 0
	l.writeIndex = 0
}

// SetComponentEnabled enables or disables logging for a component
func (l *Logger) SetComponentEnabled(component Component, enabled bool) {
	l.componentMu.Lock()
	defer l.componentMu.Unlock()
	l.componentEnabled[component] = enabled
}

// IsComponentEnabled returns whether a component is enabled
func (l *Logger) IsComponentEnabled(component Component) bool {
	l.componentMu.RLock()
	defer l.componentMu.RUnlock()
	return l.componentEnabled[component]
}

// SetMinLevel sets the minimum log level: the most verbose level Log
// still records. Raising it (toward LogLevelTrace) admits more entries.
func (l *Logger) SetMinLevel(level LogLevel) {
	l.levelMu.Lock()
	defer l.levelMu.Unlock()
	l.minLevel = level
}

// GetMinLevel returns the minimum log level
func (l *Logger) GetMinLevel() LogLevel {
	l.levelMu.RLock()
	defer l.levelMu.RUnlock()
	return l.minLevel
}

// Shutdown shuts down the logger and waits for all logs to be processed
func (l *Logger) Shutdown() {
	close(l.shutdown)
	l.wg.Wait()
}
