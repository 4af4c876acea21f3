package project

import (
	"path/filepath"

	"github.com/piwi3910/CampusGrove/internal/model"
)

// DefaultTemplatePath returns ~/.campusgrove/templates.json.
func DefaultTemplatePath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// SaveTemplates writes the site template store to path.
func SaveTemplates(path string, store model.TemplateStore) error {
	return writeJSON(path, "templates", store)
}

// LoadTemplates reads a site template store. A missing file yields an
// empty store.
func LoadTemplates(path string) (model.TemplateStore, error) {
	store := model.NewTemplateStore()
	if _, err := readJSON(path, "templates", &store); err != nil {
		return model.TemplateStore{}, err
	}
	if store.Templates == nil {
		store.Templates = []model.SiteTemplate{}
	}
	return store, nil
}

// LoadDefaultTemplates loads the site templates from the default path.
func LoadDefaultTemplates() (model.TemplateStore, error) {
	return LoadTemplates(DefaultTemplatePath())
}

// SaveDefaultTemplates saves the site templates to the default path.
func SaveDefaultTemplates(store model.TemplateStore) error {
	return SaveTemplates(DefaultTemplatePath(), store)
}
