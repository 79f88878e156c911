package types

import "log/slog"

// OutputMode selects the shape of parsed output.
type OutputMode int

const (
	// OutputObjects emits one map per row keyed by header name, with
	// normalized values.
	OutputObjects OutputMode = iota
	// OutputCompact emits raw field slices without normalization.
	OutputCompact
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputObjects:
		return "objects"
	case OutputCompact:
		return "compact"
	default:
		return "unknown"
	}
}

// ErrorMode controls how per-row failures are handled once headers are
// established. Structural failures before headers, and limit violations, are
// always fatal regardless of mode.
type ErrorMode int

const (
	// ErrorWarn logs the failing row and reconciles or skips it.
	ErrorWarn ErrorMode = iota
	// ErrorSkip silently reconciles or skips the failing row.
	ErrorSkip
	// ErrorThrow aborts the whole operation on the first per-row failure.
	ErrorThrow
)

// String returns the mode name.
func (m ErrorMode) String() string {
	switch m {
	case ErrorWarn:
		return "warn"
	case ErrorSkip:
		return "skip"
	case ErrorThrow:
		return "throw"
	default:
		return "unknown"
	}
}

// DefaultCandidates is the default ordered delimiter candidate set. Order
// matters: detection ties resolve to the first listed candidate.
var DefaultCandidates = []byte{';', ',', '\t', '|'}

// Options is the configuration surface shared by the parse and serialize
// directions. Start from DefaultOptions and override fields; the zero value
// disables behaviors that default to on.
type Options struct {
	// Delimiter forces a field delimiter. Zero means detect (when AutoDetect
	// is set) or fall back to ','.
	Delimiter byte
	// AutoDetect enables delimiter auto-detection when Delimiter is zero.
	AutoDetect bool
	// CandidateDelimiters is the ordered candidate set for auto-detection.
	CandidateDelimiters []byte
	// HasHeaders treats the first row as the header row.
	HasHeaders bool
	// HeaderTemplate supplies or orders header names. On parse it overrides
	// derived header names; with HasHeaders the header row is still
	// consumed. On serialize it fixes the leading column order.
	HeaderTemplate []string
	// RenameMap maps header names to output names. Applied to the final
	// header names, not the record lookup keys.
	RenameMap map[string]string
	// OutputMode selects objects or compact output.
	OutputMode OutputMode
	// MaxRows caps the number of data rows in bulk mode and per decoder.
	// Zero means unbounded. Exceeding it is always fatal.
	MaxRows int
	// OnError selects per-row failure handling.
	OnError ErrorMode
	// RepairRowShifts enables the row-shift repair pass (objects mode only).
	RepairRowShifts bool

	// TrimValues trims surrounding whitespace before coercion.
	TrimValues bool
	// CoerceNumbers converts integer/decimal lexical matches to numbers.
	CoerceNumbers bool
	// CoerceBooleans converts literal true/false (case-insensitive) to bool.
	CoerceBooleans bool
	// EmptyQuotedAsString keeps a quoted empty field as "" instead of nil.
	EmptyQuotedAsString bool

	// NeutralizeFormulas prefixes spreadsheet formula triggers on serialize.
	NeutralizeFormulas bool
	// CRLF terminates serialized rows with \r\n instead of \n.
	CRLF bool
	// IncludeBOM prepends a UTF-8 byte-order mark to serialized output.
	IncludeBOM bool

	// Logger receives warnings (skipped rows, truncation, advisory
	// thresholds). Nil uses slog.Default.
	Logger *slog.Logger
}

// DefaultOptions returns the recognized defaults: auto-detection on, headers
// on, objects output, warn-and-reconcile error handling, repair enabled, and
// all value coercions enabled.
func DefaultOptions() *Options {
	return &Options{
		AutoDetect:          true,
		CandidateDelimiters: DefaultCandidates,
		HasHeaders:          true,
		OutputMode:          OutputObjects,
		OnError:             ErrorWarn,
		RepairRowShifts:     true,
		TrimValues:          true,
		CoerceNumbers:       true,
		CoerceBooleans:      true,
		EmptyQuotedAsString: true,
		NeutralizeFormulas:  true,
	}
}

// Validate checks option values and combinations, returning a
// *ConfigurationError describing the first problem found.
func (o *Options) Validate() error {
	switch o.Delimiter {
	case '"':
		return &ConfigurationError{Option: "Delimiter", Message: "delimiter cannot be the quote character"}
	case '\n', '\r':
		return &ConfigurationError{Option: "Delimiter", Message: "delimiter cannot be a line terminator"}
	}
	for _, c := range o.CandidateDelimiters {
		if c == '"' || c == '\n' || c == '\r' {
			return &ConfigurationError{Option: "CandidateDelimiters", Message: "candidate cannot be a quote or line terminator"}
		}
	}
	if o.OutputMode != OutputObjects && o.OutputMode != OutputCompact {
		return &ConfigurationError{Option: "OutputMode", Message: "unknown output mode"}
	}
	if o.OnError != ErrorWarn && o.OnError != ErrorSkip && o.OnError != ErrorThrow {
		return &ConfigurationError{Option: "OnError", Message: "unknown error mode"}
	}
	if o.MaxRows < 0 {
		return &ConfigurationError{Option: "MaxRows", Message: "must be zero or positive"}
	}
	for from := range o.RenameMap {
		if from == "" {
			return &ConfigurationError{Option: "RenameMap", Message: "empty source header name"}
		}
	}
	return nil
}

// Log returns the configured logger, or slog.Default when unset.
func (o *Options) Log() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
