// Package log builds the zap loggers handed to govsnap components.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// ConsoleEncoder writes plain text lines.
	ConsoleEncoder = "console"
	// JSONEncoder writes one JSON object per line.
	JSONEncoder = "json"
)

// Config selects the encoder and the level of every component.
type Config struct {
	Encoder string `mapstructure:"encoder"`
	Level   string `mapstructure:"level"`
	// Components overrides Level for named components, e.g. "hub" or "score".
	Components map[string]string `mapstructure:"components"`
}

func DefaultConfig() Config {
	return Config{
		Encoder: ConsoleEncoder,
		Level:   zapcore.WarnLevel.String(),
	}
}

type Opt func(*Logging)

// WithWriter sets where logs go, stdout by default.
func WithWriter(w io.Writer) Opt {
	return func(l *Logging) {
		l.out = zapcore.AddSync(w)
	}
}

// WithHooks registers hooks called for every written entry.
func WithHooks(hooks ...func(zapcore.Entry) error) Opt {
	return func(l *Logging) {
		l.hooks = append(l.hooks, hooks...)
	}
}

// Logging hands out component loggers that share an encoder and an output. Levels are
// atomic and may be changed while loggers are in use.
type Logging struct {
	encoder zapcore.Encoder
	out     zapcore.WriteSyncer
	hooks   []func(zapcore.Entry) error
	level   zap.AtomicLevel

	mu         sync.Mutex
	components map[string]zap.AtomicLevel
}

func New(cfg Config, opts ...Opt) (*Logging, error) {
	l := &Logging{
		out:        zapcore.Lock(os.Stdout),
		components: map[string]zap.AtomicLevel{},
	}
	switch cfg.Encoder {
	case ConsoleEncoder, "":
		l.encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	case JSONEncoder:
		l.encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		return nil, fmt.Errorf("unknown log encoder %q", cfg.Encoder)
	}
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	l.level = zap.NewAtomicLevelAt(level)
	for name, text := range cfg.Components {
		lvl, err := parseLevel(text)
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", name, err)
		}
		l.components[name] = zap.NewAtomicLevelAt(lvl)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func parseLevel(text string) (zapcore.Level, error) {
	if text == "" {
		return zapcore.WarnLevel, nil
	}
	lvl, err := zapcore.ParseLevel(text)
	if err != nil {
		return lvl, fmt.Errorf("parse log level: %w", err)
	}
	return lvl, nil
}

// Logger returns the root logger at the default level.
func (l *Logging) Logger() *zap.Logger {
	return l.build(l.level)
}

// Named returns the logger of a component. Components without an override follow the
// default level.
func (l *Logging) Named(component string) *zap.Logger {
	l.mu.Lock()
	lvl, ok := l.components[component]
	l.mu.Unlock()
	if !ok {
		lvl = l.level
	}
	return l.build(lvl).Named(component)
}

// SetLevel changes the level of a component, or the default level when component is empty.
// Loggers handed out before a component got its own level keep following the default.
func (l *Logging) SetLevel(component string, level zapcore.Level) {
	if component == "" {
		l.level.SetLevel(level)
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if lvl, ok := l.components[component]; ok {
		lvl.SetLevel(level)
		return
	}
	l.components[component] = zap.NewAtomicLevelAt(level)
}

func (l *Logging) build(level zap.AtomicLevel) *zap.Logger {
	core := zapcore.NewCore(l.encoder, l.out, level)
	return zap.New(zapcore.RegisterHooks(core, l.hooks...))
}
