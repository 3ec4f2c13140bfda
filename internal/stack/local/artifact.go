package local

import (
	"os"

	"github.com/thoreinstein/strata/internal/errors"
	"github.com/thoreinstein/strata/internal/paths"
	"github.com/thoreinstein/strata/internal/stack"
)

// artifactStore provisions a directory on the local filesystem for pipeline
// artifacts. The "path" setting overrides the location; by default the store
// lives in the data home, keyed by the record's identity.
type artifactStore struct {
	path string
}

func newArtifactStore(rec stack.Record) (stack.Provisioner, error) {
	return &artifactStore{
		path: rec.Setting("path", componentDataDir("artifacts", rec)),
	}, nil
}

// Provision creates the artifact directory. Already existing is fine.
func (s *artifactStore) Provision() error {
	if err := paths.EnsureDir(s.path, 0); err != nil {
		return errors.Wrap(err, "creating artifact store directory")
	}
	return nil
}

// Deprovision removes the artifact directory and everything stored in it.
func (s *artifactStore) Deprovision() error {
	if err := os.RemoveAll(s.path); err != nil {
		return errors.Wrap(err, "removing artifact store directory")
	}
	return nil
}

// Provisioned reports whether the artifact directory exists.
func (s *artifactStore) Provisioned() (bool, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "checking artifact store directory")
	}
	return info.IsDir(), nil
}
