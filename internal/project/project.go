package project

import (
	"fmt"
	"os"

	"github.com/piwi3910/CampusGrove/internal/model"
)

// FileExtension is the suffix used for saved campus projects.
const FileExtension = ".campus"

// Save writes a project to path as indented JSON, creating parent directories.
func Save(path string, p model.Project) error {
	return writeJSON(path, "project", p)
}

// Load reads a project written by Save. Missing slices are normalized so
// callers can range over them and append without nil checks.
func Load(path string) (model.Project, error) {
	var p model.Project
	found, err := readJSON(path, "project", &p)
	if err != nil {
		return model.Project{}, err
	}
	if !found {
		return model.Project{}, fmt.Errorf("failed to read project %s: %w", path, os.ErrNotExist)
	}
	normalizeProject(&p)
	return p, nil
}

func normalizeProject(p *model.Project) {
	if p.Buildings == nil {
		p.Buildings = []model.Building{}
	}
	if p.Corridors == nil {
		p.Corridors = []model.Corridor{}
	}
	if p.Settings == (model.PlacementSettings{}) {
		p.Settings = model.DefaultSettings()
	}
	if p.Result != nil && p.Result.Points == nil {
		p.Result.Points = []model.PlacementPoint{}
	}
}
