package ecotab

import (
	"log/slog"

	"github.com/hupe1980/ecotab/blobstore"
	"github.com/hupe1980/ecotab/codec"
	"github.com/hupe1980/ecotab/predicate"
)

type options struct {
	store     blobstore.Store
	codec     codec.Codec
	delimiter string
	predicate *predicate.Predicate
	logger    *Logger
}

// Option configures load/export behavior.
type Option func(*options)

// WithStore configures the blob store inputs are read from and exports are
// written to. If nil is passed, the local filesystem rooted at the working
// directory is used.
func WithStore(s blobstore.Store) Option {
	return func(o *options) {
		if s == nil {
			s = blobstore.NewLocalStore(".")
		}
		o.store = s
	}
}

// WithCodec configures the codec used for decoding structured containers.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithDelimiter configures the cell delimiter for text tables.
// The default is a tab.
func WithDelimiter(delim string) Option {
	return func(o *options) {
		if delim != "" {
			o.delimiter = delim
		}
	}
}

// WithPredicate configures a metadata predicate applied before alignment,
// so excluded samples never enter the returned structures.
//
// Example:
//
//	ds, err := ecotab.Load(ctx, "otu_table.txt", "mapping.txt",
//	    ecotab.WithPredicate(predicate.Exclude("type", "blank")),
//	)
func WithPredicate(p *predicate.Predicate) Option {
	return func(o *options) {
		o.predicate = p
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		store:     blobstore.NewLocalStore("."),
		codec:     codec.Default,
		delimiter: "\t",
		logger:    NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
