package source

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Manifest is the optional project manifest (zinc.yaml) a source tree may
// carry at its root. Its absence is not an error; every field defaults to
// the zero value's natural behavior.
type Manifest struct {
	Entry   string   `yaml:"entry"`
	Edition string   `yaml:"edition"`
	Stdlib  []string `yaml:"stdlib"`
}

func loadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, nil
		}
		return Manifest{}, errors.Wrapf(err, "reading manifest %q", path)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, errors.Wrapf(err, "parsing manifest %q", path)
	}
	return m, nil
}

// StdlibEnabled reports whether a dotted stdlib namespace (e.g.
// "std::crypto") is permitted under this manifest. An empty Stdlib list
// means everything is permitted.
func (m Manifest) StdlibEnabled(namespace string) bool {
	if len(m.Stdlib) == 0 {
		return true
	}
	for _, ns := range m.Stdlib {
		if ns == namespace {
			return true
		}
	}
	return false
}
