// Package logger holds the process-wide zerolog logger.
//
// Call Init once from the serve command; everything else takes the returned
// logger as a dependency or, where that is awkward, calls Get.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultService = "veicsys"

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Service and Env are attached to every entry.
	Service string
	Env     string
	// Level accepts zerolog level names plus "warning". Anything else is info.
	Level string
	// Pretty switches to the coloured console writer for local runs.
	Pretty bool
	Output io.Writer
}

var (
	mu       sync.RWMutex
	instance *zerolog.Logger
)

// Init builds the process logger. Later calls return the first logger
// unchanged.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		l := build(opts)
		instance = &l
	}
	return *instance
}

// Get returns the logger built by Init. It panics when Init has not run.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("logger: Get() called before Init()")
	}
	return *instance
}

// WithRequestID tags l with the echo request id so access lines and error
// lines of one request can be joined.
func WithRequestID(l zerolog.Logger, id string) zerolog.Logger {
	if id == "" {
		return l
	}
	return l.With().Str("request_id", id).Logger()
}

// Reset drops the logger so the next Init rebuilds it. Tests only.
func Reset() {
	mu.Lock()
	instance = nil
	mu.Unlock()
}

func build(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	service := opts.Service
	if service == "" {
		service = defaultService
	}

	lvl := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	ctx := zerolog.New(out).Level(lvl).With().Timestamp().Str("service", service)
	if opts.Env != "" {
		ctx = ctx.Str("env", opts.Env)
	}
	return ctx.Caller().Logger()
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
