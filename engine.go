package jtcsv

import (
	"log/slog"

	"github.com/Linol-Hamelton/jtcsv-sub000/internal/detect"
	"github.com/Linol-Hamelton/jtcsv-sub000/internal/rowparse"
	"github.com/Linol-Hamelton/jtcsv-sub000/pkg/types"
)

// Engine is the conversion engine. It owns the two process-wide caches —
// delimiter detection and compiled parsers — as explicit, bounded,
// constructor-injected state rather than hidden singletons, so callers that
// need isolation can supply fresh instances. An Engine is safe for
// concurrent use; everything outside the caches is local to one call.
type Engine struct {
	detector *detect.Detector
	compiler *rowparse.Compiler
	logger   *slog.Logger
}

type engineConfig struct {
	detectorCacheSize int
	parserCacheSize   int
	logger            *slog.Logger
}

// EngineOption configures an Engine at construction.
type EngineOption func(*engineConfig)

// WithDetectorCacheSize bounds the delimiter-detection cache.
func WithDetectorCacheSize(n int) EngineOption {
	return func(c *engineConfig) { c.detectorCacheSize = n }
}

// WithParserCacheSize bounds the compiled-parser cache.
func WithParserCacheSize(n int) EngineOption {
	return func(c *engineConfig) { c.parserCacheSize = n }
}

// WithLogger sets the engine-level logger. A logger set on Options takes
// precedence per call.
func WithLogger(l *slog.Logger) EngineOption {
	return func(c *engineConfig) { c.logger = l }
}

// New creates an Engine with bounded LRU caches.
func New(opts ...EngineOption) *Engine {
	cfg := engineConfig{
		detectorCacheSize: detect.DefaultCacheSize,
		parserCacheSize:   rowparse.DefaultCompilerCacheSize,
	}
	for _, o := range opts {
		o(&cfg)
	}
	return &Engine{
		detector: detect.NewDetector(cfg.detectorCacheSize),
		compiler: rowparse.NewCompiler(cfg.parserCacheSize),
		logger:   cfg.logger,
	}
}

// log resolves the logger for one call: per-call option first, then the
// engine logger, then slog.Default.
func (e *Engine) log(opts *types.Options) *slog.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	if e.logger != nil {
		return e.logger
	}
	return slog.Default()
}

// resolveDelimiter picks the delimiter for a parse run: a forced option
// wins, then auto-detection over the sample, then the comma fallback.
func (e *Engine) resolveDelimiter(sample string, opts *types.Options) byte {
	if opts.Delimiter != 0 {
		return opts.Delimiter
	}
	if opts.AutoDetect {
		cands := opts.CandidateDelimiters
		if len(cands) == 0 {
			cands = types.DefaultCandidates
		}
		return e.detector.Detect(sample, cands)
	}
	return detect.DefaultDelimiter
}

// defaultEngine backs the package-level convenience functions.
var defaultEngine = New()
