// Package modfile reads the module manifest (meta.json) that ships with
// a pluggable robotics module. The harness only interprets the handful
// of fields it needs for packaging and diagnostics; everything else in
// the manifest belongs to the module registry and is carried verbatim.
package modfile

import (
	"encoding/json"
	"os"
	"path/filepath"

	e "modkit/pkg/errors"
)

// FileName is the fixed manifest name at the module root.
const FileName = "meta.json"

// Model describes one model the module registers with the robot server.
type Model struct {
	API   string `json:"api"`
	Model string `json:"model"`
}

// Manifest is the parsed module manifest.
type Manifest struct {
	ModuleID    string  `json:"module_id"`
	Visibility  string  `json:"visibility,omitempty"`
	URL         string  `json:"url,omitempty"`
	Description string  `json:"description,omitempty"`
	Models      []Model `json:"models"`
	// Entrypoint is the script the module host invokes after extracting
	// an archive, typically run.sh.
	Entrypoint string `json:"entrypoint"`
}

// Load reads and validates the manifest at root/meta.json.
func Load(root string) (*Manifest, error) {
	p := filepath.Join(root, FileName)
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, e.New(e.ErrFileNotFound, "Module manifest not found").
				WithContext("path", p)
		}
		return nil, e.Wrap(err, e.ErrFilesystem, "Failed to read module manifest")
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, e.Wrap(err, e.ErrManifestInvalid, "Module manifest is not valid JSON").
			WithContext("path", p)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the fields the harness relies on.
func (m *Manifest) Validate() error {
	if m.ModuleID == "" {
		return e.New(e.ErrManifestInvalid, "Manifest is missing module_id")
	}
	if m.Entrypoint == "" {
		return e.New(e.ErrManifestInvalid, "Manifest is missing entrypoint").
			WithContext("module_id", m.ModuleID)
	}
	if len(m.Models) == 0 {
		return e.New(e.ErrManifestInvalid, "Manifest declares no models").
			WithContext("module_id", m.ModuleID)
	}
	for _, mdl := range m.Models {
		if mdl.API == "" || mdl.Model == "" {
			return e.New(e.ErrManifestInvalid, "Manifest model entry is incomplete").
				WithContext("module_id", m.ModuleID)
		}
	}
	return nil
}
