package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type wireOpening struct {
	Opening
	Position json.RawMessage `json:"position"`
}

type wireFloor struct {
	Floor
	Openings []wireOpening `json:"openings"`
}

type wireBuilding struct {
	Building
	Floors []wireFloor `json:"floors"`
}

// WriteJSON encodes the model as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(b *Building, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a model from r.
//
// Opening positions may use any encoding accepted by [NormalizePosition];
// they are normalized here, once, against the length of the wall they
// reference. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Building, error) {
	var wb wireBuilding
	if err := json.NewDecoder(r).Decode(&wb); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	b := wb.Building
	b.Floors = make([]Floor, len(wb.Floors))
	for i, wf := range wb.Floors {
		f := wf.Floor
		f.Openings = make([]Opening, len(wf.Openings))
		for j, wo := range wf.Openings {
			o := wo.Opening
			length := 0
			if w, ok := f.Wall(o.WallID); ok {
				length = w.Length()
			}
			o.Position = NormalizePosition(wo.Position, length)
			f.Openings[j] = o
		}
		b.Floors[i] = f
	}
	if b.Facades == nil {
		b.Facades = SummarizeFacades(b.Floors)
	}
	return &b, nil
}

// ExportJSON writes the model to a JSON file at path.
func ExportJSON(b *Building, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(b, f)
}

// ImportJSON reads a model from the JSON file at path.
func ImportJSON(path string) (*Building, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
