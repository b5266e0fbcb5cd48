// Package building constructs a [model.Building] from a brief.
//
// Construction is one fixed sequential pipeline:
//
//  1. Sanitize the brief (non-finite and negative values are dropped)
//  2. Resolve the envelope ([envelope.Build])
//  3. Synthesize floors, roof and stairs ([layout.Synthesize])
//  4. Summarize openings per facade
//
// A missing brief is the only error. Everything else degrades to defaults
// and is reported through the logger and the model's warnings.
//
// # Usage
//
//	b, err := brief.ReadFile("house.toml")
//	if err != nil {
//	    return err
//	}
//	m, err := building.New(b, building.Options{Logger: logger})
//	if err != nil {
//	    return err
//	}
//	v := m.Validate()
package building

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/blueprint/pkg/brief"
	"github.com/matzehuels/blueprint/pkg/envelope"
	"github.com/matzehuels/blueprint/pkg/errors"
	"github.com/matzehuels/blueprint/pkg/layout"
	"github.com/matzehuels/blueprint/pkg/model"
)

// Options configures construction.
type Options struct {
	// Logger receives construction diagnostics. Nil discards them.
	Logger *log.Logger

	// Layout configures floor synthesis. Its Logger defaults to Logger.
	Layout layout.Options

	// NewID generates the model id when the brief has none. Nil uses a
	// random UUID.
	NewID func() string
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Layout.Logger == nil {
		o.Layout.Logger = o.Logger
	}
	if o.NewID == nil {
		o.NewID = func() string { return uuid.NewString() }
	}
	return o
}

// New builds the model for b. The brief is not modified.
func New(b *brief.Brief, opts Options) (*model.Building, error) {
	if b == nil {
		return nil, errors.New(errors.ErrCodeMissingBrief, "building requires a brief")
	}
	opts = opts.withDefaults()
	logger := opts.Logger

	b = b.Sanitize()
	env, err := envelope.Build(b, envelope.Options{Logger: logger})
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved envelope",
		"source", env.Source,
		"width", env.Envelope.Width,
		"depth", env.Envelope.Depth,
		"height", env.Envelope.Height,
		"levels", env.Levels)

	res := layout.Synthesize(b, env.Envelope, opts.Layout)

	id := b.ID
	if id == "" {
		id = opts.NewID()
	}
	m := &model.Building{
		ID:       id,
		Envelope: env.Envelope,
		Floors:   res.Floors,
		Roof:     res.Roof,
		Stairs:   res.Stairs,
		Facades:  model.SummarizeFacades(res.Floors),
		Warnings: res.Warnings,
	}
	logger.Info("built model",
		"id", m.ID,
		"floors", len(m.Floors),
		"warnings", len(m.Warnings))
	return m, nil
}
