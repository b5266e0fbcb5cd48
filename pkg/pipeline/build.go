package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/blueprint/pkg/brief"
	"github.com/matzehuels/blueprint/pkg/building"
	"github.com/matzehuels/blueprint/pkg/cache"
	"github.com/matzehuels/blueprint/pkg/layout"
	"github.com/matzehuels/blueprint/pkg/model"
)

// LoadBrief returns the sanitized brief of a run: opts.Brief when set, else
// the file at opts.BriefPath.
func LoadBrief(opts Options) (*brief.Brief, error) {
	if opts.Brief != nil {
		return opts.Brief.Sanitize(), nil
	}
	return brief.ReadFile(opts.BriefPath)
}

// BuildModel constructs the building model for b.
func BuildModel(b *brief.Brief, opts Options) (*model.Building, error) {
	return building.New(b, building.Options{
		Logger: opts.Logger,
		Layout: layout.Options{
			Logger:        opts.Logger,
			ProgramPolicy: layout.ProgramPolicy(opts.ProgramPolicy),
			DisableRepair: opts.DisableRepair,
		},
	})
}

// BriefHash is the content hash of a sanitized brief.
func BriefHash(b *brief.Brief) (string, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("serialize brief: %w", err)
	}
	return cache.Hash(data), nil
}

// ModelHash is the content hash of a model.
func ModelHash(m *model.Building) (string, error) {
	data, err := marshalModel(m)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

func marshalModel(m *model.Building) ([]byte, error) {
	var buf bytes.Buffer
	if err := model.WriteJSON(m, &buf); err != nil {
		return nil, fmt.Errorf("serialize model: %w", err)
	}
	return buf.Bytes(), nil
}
