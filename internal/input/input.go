// internal/input/input.go
// Experiment document loading: JSON or YAML in, validated assay entities
// out. Ct entries use explicit null for "not measured".
package input

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"rqpcr-core/assay"
)

// Default amplification efficiency when a gene omits the field.
const defaultEfficiency = 2.0

// Experiment is the decoded and validated input snapshot.
type Experiment struct {
	Genes   []assay.Gene
	Groups  []assay.Group
	Samples []assay.Sample
}

// Document is the wire shape of an experiment file.
type Document struct {
	Genes   []GeneDoc   `json:"genes" yaml:"genes"`
	Groups  []GroupDoc  `json:"groups" yaml:"groups"`
	Samples []SampleDoc `json:"samples" yaml:"samples"`
}

type GeneDoc struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Role       string  `json:"role" yaml:"role"`
	Efficiency float64 `json:"efficiency" yaml:"efficiency"`
}

type GroupDoc struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Control bool   `json:"control" yaml:"control"`
	Color   string `json:"color" yaml:"color"`
}

type SampleDoc struct {
	ID        string              `json:"id" yaml:"id"`
	Group     string              `json:"group" yaml:"group"`
	Replicate int                 `json:"replicate" yaml:"replicate"`
	Cts       map[string]*float64 `json:"ct" yaml:"ct"`
}

// FormatFor picks the decode format from a file extension. Everything
// that is not YAML decodes as JSON.
func FormatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// Load reads and validates an experiment file. format may be empty to
// pick by extension.
func Load(path, format string) (Experiment, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Experiment{}, err
	}
	defer func() { _ = fh.Close() }()
	if format == "" {
		format = FormatFor(path)
	}
	exp, err := Read(fh, format)
	if err != nil {
		return Experiment{}, fmt.Errorf("%s: %w", path, err)
	}
	return exp, nil
}

// Read decodes one experiment document from r in the given format
// ("json" or "yaml") and validates it.
func Read(r io.Reader, format string) (Experiment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Experiment{}, err
	}
	var doc Document
	switch format {
	case "json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return Experiment{}, fmt.Errorf("parse experiment json: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Experiment{}, fmt.Errorf("parse experiment yaml: %w", err)
		}
	default:
		return Experiment{}, fmt.Errorf("unknown input format %q", format)
	}
	return doc.Experiment()
}

// Experiment validates the document and maps it onto the assay entities.
func (d Document) Experiment() (Experiment, error) {
	var exp Experiment

	geneIDs := make(map[string]struct{}, len(d.Genes))
	for i, g := range d.Genes {
		if g.ID == "" {
			return exp, fmt.Errorf("gene %d: missing id", i)
		}
		if _, dup := geneIDs[g.ID]; dup {
			return exp, fmt.Errorf("gene %q: duplicate id", g.ID)
		}
		geneIDs[g.ID] = struct{}{}

		role := assay.Role(g.Role)
		if role != assay.RoleTarget && role != assay.RoleReference {
			return exp, fmt.Errorf("gene %q: unknown role %q", g.ID, g.Role)
		}
		eff := g.Efficiency
		if eff == 0 {
			eff = defaultEfficiency
		}
		if eff < 0 {
			return exp, fmt.Errorf("gene %q: negative efficiency %g", g.ID, g.Efficiency)
		}
		name := g.Name
		if name == "" {
			name = g.ID
		}
		exp.Genes = append(exp.Genes, assay.Gene{ID: g.ID, Name: name, Role: role, Efficiency: eff})
	}

	groupIDs := make(map[string]struct{}, len(d.Groups))
	for i, g := range d.Groups {
		if g.ID == "" {
			return exp, fmt.Errorf("group %d: missing id", i)
		}
		if _, dup := groupIDs[g.ID]; dup {
			return exp, fmt.Errorf("group %q: duplicate id", g.ID)
		}
		groupIDs[g.ID] = struct{}{}
		name := g.Name
		if name == "" {
			name = g.ID
		}
		exp.Groups = append(exp.Groups, assay.Group{ID: g.ID, Name: name, Control: g.Control, Color: g.Color})
	}

	sampleIDs := make(map[string]struct{}, len(d.Samples))
	for i, s := range d.Samples {
		if s.ID == "" {
			return exp, fmt.Errorf("sample %d: missing id", i)
		}
		if _, dup := sampleIDs[s.ID]; dup {
			return exp, fmt.Errorf("sample %q: duplicate id", s.ID)
		}
		sampleIDs[s.ID] = struct{}{}
		if _, ok := groupIDs[s.Group]; !ok {
			return exp, fmt.Errorf("sample %q: unknown group %q", s.ID, s.Group)
		}
		for gid := range s.Cts {
			if _, ok := geneIDs[gid]; !ok {
				return exp, fmt.Errorf("sample %q: ct for unknown gene %q", s.ID, gid)
			}
		}
		exp.Samples = append(exp.Samples, assay.Sample{
			ID: s.ID, GroupID: s.Group, Replicate: s.Replicate, Cts: s.Cts,
		})
	}

	return exp, nil
}
