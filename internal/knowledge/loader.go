// Package knowledge holds the material catalog knowledge and the project templates the
// voice agent reasons with, plus the rules that turn a project description into
// material layers and match those layers against store products.
//
// The tables ship embedded as YAML and can be overridden from a directory at startup.
package knowledge

import (
	"embed"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

const (
	materialsFile = "materials.yaml"
	projectsFile  = "projects.yaml"
)

//go:embed data/*.yaml
var embedded embed.FS

type materialsDocument struct {
	Materials []Material `yaml:"materials"`
}

type projectsDocument struct {
	Projects []ProjectTemplate `yaml:"projects"`
}

// DefaultFS returns the tables compiled into the binary.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// data/ is embedded at build time; a failure here is a build defect.
		panic(err)
	}
	return sub
}

// Load reads materials.yaml and projects.yaml from fsys and builds a validated
// knowledge base and recommender.
func Load(fsys fs.FS) (*KnowledgeBase, *Recommender, error) {
	var mats materialsDocument
	if err := decode(fsys, materialsFile, &mats); err != nil {
		return nil, nil, err
	}

	kb, err := NewKnowledgeBase(mats.Materials)
	if err != nil {
		return nil, nil, err
	}

	var projects projectsDocument
	if err := decode(fsys, projectsFile, &projects); err != nil {
		return nil, nil, err
	}

	rec, err := NewRecommender(projects.Projects, kb)
	if err != nil {
		return nil, nil, err
	}

	return kb, rec, nil
}

// MustLoadDefault loads the embedded tables and panics if they are invalid.
func MustLoadDefault() (*KnowledgeBase, *Recommender) {
	kb, rec, err := Load(DefaultFS())
	if err != nil {
		panic(fmt.Sprintf("knowledge: embedded tables are invalid: %v", err))
	}
	return kb, rec
}

func decode(fsys fs.FS, name string, out any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("knowledge: read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("knowledge: parse %s: %w", name, err)
	}
	return nil
}
