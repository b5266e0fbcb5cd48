package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/blueprint/pkg/compliance"
	"github.com/matzehuels/blueprint/pkg/errors"
	"github.com/matzehuels/blueprint/pkg/model"
	"github.com/matzehuels/blueprint/pkg/render"
	"github.com/matzehuels/blueprint/pkg/render/adjacency"
	"github.com/matzehuels/blueprint/pkg/render/projection"
)

// Files written by the json format.
const (
	ModelFile    = "model.json"
	MetadataFile = "metadata.json"
	ReportFile   = "report.json"
)

// Report is the content of report.json.
type Report struct {
	Validation model.Validation  `json:"validation"`
	Compliance compliance.Report `json:"compliance"`
}

// RenderModel generates output files for every requested format. File
// names are unique across formats.
func RenderModel(ctx context.Context, m *model.Building, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	out := map[string][]byte{}
	for _, format := range opts.Formats {
		files, err := RenderFormat(ctx, m, format, opts)
		if err != nil {
			return nil, err
		}
		maps.Copy(out, files)
	}
	return out, nil
}

// RenderFormat generates the files of one format:
//
//   - svg: every plan, elevation and section (plan-ground.svg, ...)
//   - pdf, png: the same drawings converted with rsvg-convert
//   - json: model.json, metadata.json and report.json
//   - dot: a room adjacency diagram per floor as DOT source and SVG
func RenderFormat(ctx context.Context, m *model.Building, format string, opts Options) (map[string][]byte, error) {
	if m == nil {
		return nil, errors.New(errors.ErrCodeInternal, "render %s: no model", format)
	}
	opts.SetRenderDefaults()
	var (
		files map[string][]byte
		err   error
	)
	switch format {
	case FormatSVG:
		files = drawings(m, opts).Files()
	case FormatPDF:
		files, err = convertAll(ctx, drawings(m, opts).Files(), FormatPDF, func(svg []byte) ([]byte, error) {
			return render.ToPDF(ctx, svg)
		})
	case FormatPNG:
		files, err = convertAll(ctx, drawings(m, opts).Files(), FormatPNG, func(svg []byte) ([]byte, error) {
			return render.ToPNG(ctx, svg, opts.PNGScale)
		})
	case FormatJSON:
		files, err = renderJSON(m, opts)
	case FormatDOT:
		files, err = renderAdjacency(ctx, m, opts)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return files, nil
}

func drawings(m *model.Building, opts Options) projection.Set {
	return projection.All(m, *opts.Drawing, opts.Now())
}

// convertAll converts every SVG file, replacing the .svg extension with
// ext. Files are converted in name order so failures are reproducible.
func convertAll(ctx context.Context, svgs map[string][]byte, ext string, convert func([]byte) ([]byte, error)) (map[string][]byte, error) {
	out := make(map[string][]byte, len(svgs))
	for _, name := range slices.Sorted(maps.Keys(svgs)) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := convert(svgs[name])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[strings.TrimSuffix(name, ".svg")+"."+ext] = data
	}
	return out, nil
}

func renderJSON(m *model.Building, opts Options) (map[string][]byte, error) {
	modelData, err := marshalModel(m)
	if err != nil {
		return nil, err
	}
	meta, err := json.MarshalIndent(drawings(m, opts).Metadata, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize metadata: %w", err)
	}
	report, err := json.MarshalIndent(Report{
		Validation: m.Validate(),
		Compliance: compliance.Check(m),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize report: %w", err)
	}
	return map[string][]byte{
		ModelFile:    modelData,
		MetadataFile: meta,
		ReportFile:   report,
	}, nil
}

func renderAdjacency(ctx context.Context, m *model.Building, opts Options) (map[string][]byte, error) {
	out := map[string][]byte{}
	for i := range m.Floors {
		fl := &m.Floors[i]
		dot := adjacency.ToDOT(fl, adjacency.Options{Detailed: opts.Detailed})
		svg, err := adjacency.RenderSVG(ctx, dot)
		if err != nil {
			return nil, fmt.Errorf("floor %d: %w", fl.Index, err)
		}
		base := "adjacency-" + projection.FloorKey(i)
		out[base+".dot"] = []byte(dot)
		out[base+".svg"] = svg
	}
	return out, nil
}
