// Package pipeline provides the brief → model → drawings pipeline used by
// the CLI.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Build: load and sanitize the brief, then construct the building model
//     (envelope, floors, roof, stairs)
//  2. Render: project the model into drawings and write them in the
//     requested formats (SVG, PDF, PNG, JSON, DOT)
//
// Each stage is cached independently: the model by a hash of the brief, the
// documents by a hash of the model and the drawing options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    BriefPath: "house.toml",
//	    Formats:   []string{"svg", "pdf"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	plan := result.Artifacts["plan-ground.svg"]
//
// Many designs can be processed at once with [Runner.ExecuteAll].
package pipeline

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blueprint/pkg/brief"
	"github.com/matzehuels/blueprint/pkg/cache"
	"github.com/matzehuels/blueprint/pkg/errors"
	"github.com/matzehuels/blueprint/pkg/layout"
	"github.com/matzehuels/blueprint/pkg/model"
	"github.com/matzehuels/blueprint/pkg/render/projection"
	"github.com/matzehuels/blueprint/pkg/styles"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultConcurrency is the number of designs ExecuteAll processes at
	// once when no limit is given.
	DefaultConcurrency = 4

	// DefaultPNGScale is the raster scale factor for PNG output.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Build options. Brief takes precedence over BriefPath.
	BriefPath     string       `json:"brief_path,omitempty"`
	Brief         *brief.Brief `json:"brief,omitempty"`
	ProgramPolicy string       `json:"program_policy,omitempty"`
	DisableRepair bool         `json:"disable_repair,omitempty"`
	Refresh       bool         `json:"refresh,omitempty"`

	// Render options. A nil Drawing uses projection.DefaultOptions.
	Formats  []string            `json:"formats,omitempty"`
	Drawing  *projection.Options `json:"drawing,omitempty"`
	PNGScale float64             `json:"png_scale,omitempty"`
	Detailed bool                `json:"detailed,omitempty"` // adjacency labels

	// Runtime options (not serialized)
	Logger *log.Logger      `json:"-"`
	Now    func() time.Time `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Model is the built building model.
	Model *model.Building

	// ModelHash is the content hash of the model.
	ModelHash string

	// Validation is the model's own validation report.
	Validation model.Validation

	// Artifacts maps output file names to their contents, for example
	// plan-ground.svg or elevation-N.pdf.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Floors     int
	Rooms      int
	Openings   int
	Artifacts  int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit  bool // Whether the model came from cache
	RenderHit bool // Whether every format came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTheme checks that a drawing theme exists.
func ValidateTheme(name string) error {
	if _, ok := styles.Lookup(name); !ok {
		return errors.New(errors.ErrCodeInvalidTheme, "invalid theme: %q (must be one of: %s)", name, strings.Join(styles.Names(), ", "))
	}
	return nil
}

// ValidateProgramPolicy checks a program policy name. Empty is valid and
// means the synthesizer default.
func ValidateProgramPolicy(p string) error {
	switch layout.ProgramPolicy(p) {
	case "", layout.PolicyEnvelopeOnly, layout.PolicyDefaultProgram:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidBrief, "invalid program policy: %q (must be %s or %s)",
		p, layout.PolicyEnvelopeOnly, layout.PolicyDefaultProgram)
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks the fields the build stage needs.
func (o *Options) ValidateForBuild() error {
	if o.Brief == nil {
		if o.BriefPath == "" {
			return errors.New(errors.ErrCodeMissingBrief, "brief or brief path is required")
		}
		if err := errors.ValidatePath(o.BriefPath); err != nil {
			return err
		}
	}
	if err := ValidateProgramPolicy(o.ProgramPolicy); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Drawing == nil {
		d := projection.DefaultOptions()
		o.Drawing = &d
	}
	if o.Drawing.Theme == "" {
		o.Drawing.Theme = styles.DefaultTheme
	}
	if o.PNGScale <= 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateTheme(o.Drawing.Theme)
}

// DesignName names the run in logs and hooks: the brief id, else the brief
// file name without extension.
func (o *Options) DesignName() string {
	if o.Brief != nil && o.Brief.ID != "" {
		return o.Brief.ID
	}
	if o.BriefPath != "" {
		return strings.TrimSuffix(filepath.Base(o.BriefPath), filepath.Ext(o.BriefPath))
	}
	return "brief"
}

// ModelKeyOpts returns cache key options for model construction.
func (o *Options) ModelKeyOpts() cache.ModelKeyOpts {
	return cache.ModelKeyOpts{
		ProgramPolicy: o.ProgramPolicy,
		DisableRepair: o.DisableRepair,
	}
}

// DrawingKeyOpts returns cache key options for one output format.
func (o *Options) DrawingKeyOpts(format string) cache.DrawingKeyOpts {
	k := cache.DrawingKeyOpts{Format: format}
	if o.Drawing != nil {
		data, _ := json.Marshal(o.Drawing)
		k.OptionsHash = cache.Hash(data)
	}
	switch format {
	case FormatPNG:
		k.Scale = o.PNGScale
	case FormatDOT:
		k.Detailed = o.Detailed
	}
	return k
}
