package plans

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source defines how plans are loaded into the catalog.
type Source interface {
	Load(ctx context.Context) (map[string]Plan, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (map[string]Plan, error)

// Load calls f.
func (f SourceFunc) Load(ctx context.Context) (map[string]Plan, error) {
	return f(ctx)
}

// Config selects where plans come from.
type Config struct {
	File string `env:"PLANS_FILE"` // YAML plan table; built-in defaults when empty
}

// NewSourceFromConfig returns a file source when cfg.File is set and the
// built-in salon plans otherwise.
func NewSourceFromConfig(cfg Config) Source {
	if cfg.File != "" {
		return NewFileSource(cfg.File)
	}
	return NewInMemSource(DefaultPlans())
}

type inMemSource struct {
	plans map[string]Plan
}

// NewInMemSource returns a Source backed by a deep copy of plans.
func NewInMemSource(plans map[string]Plan) Source {
	cp := make(map[string]Plan, len(plans))
	for id, p := range plans {
		cp[id] = p.clone()
	}
	return &inMemSource{plans: cp}
}

func (s *inMemSource) Load(context.Context) (map[string]Plan, error) {
	cp := make(map[string]Plan, len(s.plans))
	for id, p := range s.plans {
		cp[id] = p.clone()
	}
	return cp, nil
}

type fileSource struct {
	path string
}

// NewFileSource returns a Source that reads a YAML plan table from path.
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

func (s *fileSource) Load(context.Context) (map[string]Plan, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read plans file %s: %w", s.path, err)
	}
	return ParseYAML(data)
}

type planFile struct {
	Plans []planDoc `yaml:"plans"`
}

type planDoc struct {
	ID           string            `yaml:"id"`
	Name         string            `yaml:"name"`
	Description  string            `yaml:"description"`
	PriceMonthly int64             `yaml:"price_monthly"`
	Currency     string            `yaml:"currency"`
	Rank         int               `yaml:"rank"`
	Public       bool              `yaml:"public"`
	TrialDays    int               `yaml:"trial_days"`
	Features     []string          `yaml:"features"`
	Limits       map[string]*int64 `yaml:"limits"` // null means unlimited
}

// ParseYAML decodes a plan table. A null limit is read as Unlimited.
func ParseYAML(data []byte) (map[string]Plan, error) {
	var doc planFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Join(ErrInvalidPlanConfiguration, err)
	}

	out := make(map[string]Plan, len(doc.Plans))
	for _, d := range doc.Plans {
		if _, dup := out[d.ID]; dup {
			return nil, errors.Join(ErrInvalidPlanConfiguration, fmt.Errorf("duplicate plan id %q", d.ID))
		}

		p := Plan{
			ID:           d.ID,
			Name:         d.Name,
			Description:  d.Description,
			PriceMonthly: d.PriceMonthly,
			Currency:     d.Currency,
			Rank:         d.Rank,
			Public:       d.Public,
			TrialDays:    d.TrialDays,
			Features:     make([]Feature, 0, len(d.Features)),
			Limits:       make(map[LimitKey]int64, len(d.Limits)),
		}
		for _, f := range d.Features {
			p.Features = append(p.Features, Feature(f))
		}
		for key, v := range d.Limits {
			if v == nil {
				p.Limits[LimitKey(key)] = Unlimited
				continue
			}
			p.Limits[LimitKey(key)] = *v
		}
		out[d.ID] = p
	}

	return out, nil
}
