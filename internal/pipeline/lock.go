package pipeline

// #region imports
import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// #endregion

// ErrLocked signals that another pipeline run holds the site lock.
var ErrLocked = errors.New("pipeline: another run is in progress")

// #region lock
// AcquireLock takes an exclusive file lock for the site. The caller must call
// the returned release function when the run finishes.
func AcquireLock(path string) (release func() error, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return fl.Unlock, nil
}

// #endregion lock
