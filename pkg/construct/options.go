package construct

import (
	"go.uber.org/zap"

	"github.com/strataframe/strata/pkg/config"
	"github.com/strataframe/strata/pkg/logger"
	"github.com/strataframe/strata/pkg/schema"
)

// Option configures one construction call
type Option func(*options)

type options struct {
	schema         *schema.Declared
	overrides      schema.Overrides
	orient         Orientation
	inferLimit     int
	rechunk        bool
	convertMissing bool
	logger         *zap.Logger
}

func applyOptions(opts []Option) *options {
	def := config.Default().Construct
	o := &options{
		orient:         OrientAuto,
		inferLimit:     def.InferLimit,
		rechunk:        def.Rechunk,
		convertMissing: def.ConvertMissing,
		logger:         logger.Get(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithSchema supplies a declared schema: column names and optionally
// types. Declared names positionally replace adapter-produced names and
// their count must match the data's column count.
func WithSchema(d *schema.Declared) Option {
	return func(o *options) { o.schema = d }
}

// WithNames supplies column names only, leaving all types to inference.
func WithNames(names ...string) Option {
	return func(o *options) { o.schema = schema.DeclareNames(names...) }
}

// WithOverrides supplies per-column type overrides. An override beats
// both declared and inferred types; a key matching no resolved column
// fails the construction.
func WithOverrides(ov schema.Overrides) Option {
	return func(o *options) { o.overrides = ov }
}

// WithOrientation fixes the interpretation of two-dimensional input,
// bypassing shape-based resolution entirely.
func WithOrientation(orient Orientation) Option {
	return func(o *options) { o.orient = orient }
}

// WithInferLimit bounds the leading-row scan used for type inference and
// for the row-mapping key union. A limit of 0 scans everything, which
// can be slow on long inputs.
func WithInferLimit(n int) Option {
	return func(o *options) { o.inferLimit = n }
}

// WithRechunk controls whether multi-chunk foreign columnar input is
// made contiguous by copying. Defaults to true.
func WithRechunk(rechunk bool) Option {
	return func(o *options) { o.rechunk = rechunk }
}

// WithMissingConversion controls whether the row-labeled format's NaN
// missing marker converts to the internal null before typing. Defaults
// to true.
func WithMissingConversion(convert bool) Option {
	return func(o *options) { o.convertMissing = convert }
}

// WithLogger attaches a logger to the construction call.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}
