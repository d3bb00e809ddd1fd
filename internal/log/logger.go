/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a logging level.
type Level = zapcore.Level

// Log levels.
const (
	DEBUG    = zapcore.DebugLevel
	INFO     = zapcore.InfoLevel
	WARNING  = zapcore.WarnLevel
	ERROR    = zapcore.ErrorLevel
	CRITICAL = zapcore.DPanicLevel
	PANIC    = zapcore.PanicLevel
)

// Encoding is the log output encoding.
type Encoding string

// Supported encodings.
const (
	Console Encoding = "console"
	JSON    Encoding = "json"
)

const (
	specModuleSeparator = ":"
	specLevelSeparator  = "="
)

var levelNames = map[Level]string{
	DEBUG:    "DEBUG",
	INFO:     "INFO",
	WARNING:  "WARNING",
	ERROR:    "ERROR",
	CRITICAL: "CRITICAL",
	PANIC:    "PANIC",
}

// ParseLevel returns the level for the given name.
func ParseLevel(name string) (Level, error) {
	for l, n := range levelNames {
		if strings.EqualFold(n, name) {
			return l, nil
		}
	}

	return INFO, fmt.Errorf("invalid log level: %s", name)
}

// ParseString returns the string representation of the level.
func ParseString(level Level) string {
	if n, ok := levelNames[level]; ok {
		return n
	}

	return level.String()
}

type moduleLevels struct {
	mutex        sync.RWMutex
	levels       map[string]Level
	defaultLevel Level
}

var levels = &moduleLevels{
	levels:       make(map[string]Level),
	defaultLevel: INFO,
}

func (m *moduleLevels) get(module string) Level {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if l, ok := m.levels[module]; ok {
		return l
	}

	return m.defaultLevel
}

func (m *moduleLevels) set(module string, level Level) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.levels[module] = level
}

func (m *moduleLevels) setDefault(level Level) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.defaultLevel = level
}

func (m *moduleLevels) reset(defaultLevel Level, moduleLevels map[string]Level) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.defaultLevel = defaultLevel
	m.levels = moduleLevels
}

// SetLevel sets the log level for the given module.
func SetLevel(module string, level Level) {
	levels.set(module, level)
}

// SetDefaultLevel sets the level for modules that have no explicit level.
func SetDefaultLevel(level Level) {
	levels.setDefault(level)
}

// GetLevel returns the level of the given module.
func GetLevel(module string) Level {
	return levels.get(module)
}

// SetSpec sets module levels from a spec of the form module1=level1:module2=level2:defaultLevel.
func SetSpec(spec string) error {
	moduleLevels := make(map[string]Level)
	defaultLevel := INFO

	for _, entry := range strings.Split(spec, specModuleSeparator) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, specLevelSeparator)

		switch len(parts) {
		case 1:
			l, err := ParseLevel(parts[0])
			if err != nil {
				return err
			}

			defaultLevel = l
		case 2:
			l, err := ParseLevel(parts[1])
			if err != nil {
				return err
			}

			moduleLevels[parts[0]] = l
		default:
			return fmt.Errorf("invalid log spec entry: %s", entry)
		}
	}

	levels.reset(defaultLevel, moduleLevels)

	return nil
}

// GetSpec returns the current log spec.
func GetSpec() string {
	levels.mutex.RLock()
	defer levels.mutex.RUnlock()

	var entries []string
	for module, level := range levels.levels {
		entries = append(entries, module+specLevelSeparator+ParseString(level))
	}

	sort.Strings(entries)

	return strings.Join(append(entries, ParseString(levels.defaultLevel)), specModuleSeparator)
}

// Log is a module logger.
type Log struct {
	*zap.Logger
	module string
}

type options struct {
	stdOut   io.Writer
	encoding Encoding
	fields   []zap.Field
}

// Option is a logger option.
type Option func(o *options)

// WithStdOut sets the output writer.
func WithStdOut(w io.Writer) Option {
	return func(o *options) {
		o.stdOut = w
	}
}

// WithEncoding sets the output encoding.
func WithEncoding(encoding Encoding) Option {
	return func(o *options) {
		o.encoding = encoding
	}
}

// WithFields adds fields to every entry written by the logger.
func WithFields(fields ...zap.Field) Option {
	return func(o *options) {
		o.fields = append(o.fields, fields...)
	}
}

// New returns a logger for the given module. The module level is looked up on every write so
// changes made through SetLevel or SetSpec apply to loggers that already exist.
func New(module string, opts ...Option) *Log {
	o := &options{
		stdOut:   os.Stdout,
		encoding: Console,
	}

	for _, opt := range opts {
		opt(o)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = "ts"
	encoderCfg.MessageKey = "msg"
	encoderCfg.LevelKey = "level"
	encoderCfg.NameKey = "logger"

	var encoder zapcore.Encoder
	if o.encoding == JSON {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(o.stdOut), &moduleEnabler{module: module})

	return &Log{
		Logger: zap.New(core, zap.AddCaller()).Named(module).With(o.fields...),
		module: module,
	}
}

// Module returns the logger's module name.
func (l *Log) Module() string {
	return l.module
}

// IsEnabled returns true if the given level is enabled for the logger's module.
func (l *Log) IsEnabled(level Level) bool {
	return GetLevel(l.module).Enabled(level)
}

type moduleEnabler struct {
	module string
}

func (e *moduleEnabler) Enabled(level zapcore.Level) bool {
	return GetLevel(e.module).Enabled(level)
}
