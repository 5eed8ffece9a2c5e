package pipeline

// #region imports
import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/banyan-grid/siteproof/internal/score"
)

// #endregion

// imageExts are the file extensions enumerated from a day folder.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// #region list
// ListDayImages enumerates the image files under siteDir/dayLabel in name
// order. A missing day folder is an error so a typoed label does not silently
// produce an empty run.
func ListDayImages(siteDir, dayLabel string) ([]score.Ref, error) {
	dir := filepath.Join(siteDir, dayLabel)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read day folder %s: %w", dir, err)
	}

	var refs []score.Ref
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		refs = append(refs, score.Ref{
			ID:   e.Name(),
			Path: filepath.Join(dir, e.Name()),
		})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs, nil
}

// #endregion list
