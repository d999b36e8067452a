package app

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"datamesh/internal/domain"
	"datamesh/internal/service/catalog"
)

// seedFile is the YAML shape of a catalog seed file.
type seedFile struct {
	Products []seedProduct `yaml:"products"`
	Lineage  []seedEntry   `yaml:"lineage"`
}

type seedProduct struct {
	Name        string            `yaml:"name"`
	Domain      string            `yaml:"domain"`
	Owner       string            `yaml:"owner"`
	Description string            `yaml:"description"`
	Schema      map[string]string `yaml:"schema"`
	Status      string            `yaml:"status"`
	Version     string            `yaml:"version"`
	Tags        []string          `yaml:"tags"`
}

type seedEntry struct {
	Source         string                 `yaml:"source"`
	Target         string                 `yaml:"target"`
	Transformation string                 `yaml:"transformation"`
	LineageType    string                 `yaml:"lineage_type"`
	Confidence     *float64               `yaml:"confidence"`
	Metadata       map[string]interface{} `yaml:"metadata"`
}

// seedCatalog registers the products and lineage from a YAML seed file.
// Idempotent — a catalog that already holds products is left alone.
func seedCatalog(ctx context.Context, svc *catalog.Service, path string) error {
	if products, _ := svc.Counts(); products > 0 {
		return nil // already seeded
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	for _, sp := range seed.Products {
		p := domain.NewDataProduct()
		p.Name = sp.Name
		p.Domain = sp.Domain
		p.Owner = sp.Owner
		p.Description = sp.Description
		p.Schema = sp.Schema
		if sp.Status != "" {
			p.Status = domain.ProductStatus(sp.Status)
		}
		if sp.Version != "" {
			p.Version = sp.Version
		}
		p.Tags = sp.Tags

		if _, err := svc.RegisterProduct(ctx, p); err != nil {
			return fmt.Errorf("seed product %q: %w", sp.Name, err)
		}
	}

	for _, se := range seed.Lineage {
		e := domain.NewLineageEntry()
		e.Source = se.Source
		e.Target = se.Target
		e.Transformation = se.Transformation
		if se.LineageType != "" {
			e.LineageType = domain.LineageType(se.LineageType)
		}
		if se.Confidence != nil {
			e.Confidence = *se.Confidence
		}
		if se.Metadata != nil {
			e.Metadata = se.Metadata
		}

		if _, err := svc.RegisterLineage(ctx, e); err != nil {
			return fmt.Errorf("seed lineage %q -> %q: %w", se.Source, se.Target, err)
		}
	}

	return nil
}
