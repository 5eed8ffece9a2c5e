package config

// #region imports
import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/banyan-grid/siteproof/internal/classify"
)

// #endregion

// #region sections
// Paths contains the directory layout for a monitored plant.
type Paths struct {
	// SiteDir is the root directory holding per-day image folders.
	SiteDir string `toml:"site_dir"`
	// DetectionsDir holds per-day detection JSON exports.
	DetectionsDir string `toml:"detections_dir"`
	// ReportDir receives generated charts and reports.
	ReportDir string `toml:"report_dir"`
	// Database is the sqlite file for runs, classifications and thresholds.
	Database string `toml:"database"`
	// FeedbackDB is the sqlite file backing the append-only feedback log.
	FeedbackDB string `toml:"feedback_db"`
	// LockFile guards against concurrent pipeline runs over the same site.
	LockFile string `toml:"lock_file"`
}

// Vision contains configuration for the remote vision inference service.
// The API key is read from the environment, never written to disk alongside
// the rest of the config.
type Vision struct {
	Enabled      bool   `toml:"enabled"`
	Addr         string `toml:"addr"`
	ReferenceSet string `toml:"reference_set"`
}

// Classify contains the scoring policy and its fixed cut-points.
type Classify struct {
	// Policy is "fixed" or "learned".
	Policy string `toml:"policy"`
	// InstallationCut is the exclusive lower bound for the installation stage.
	InstallationCut float64 `toml:"installation_cut"`
	// MountingCut is the inclusive lower bound for the mounting stage.
	MountingCut float64 `toml:"mounting_cut"`
	// AnomalyThreshold flags scores below it for manual review.
	AnomalyThreshold float64 `toml:"anomaly_threshold"`
}

// Detect contains object detection settings.
type Detect struct {
	// PanelClass is the detection class counted for panel trend charts.
	PanelClass string `toml:"panel_class"`
	// MinConfidence filters detections below this confidence.
	MinConfidence float64 `toml:"min_confidence"`
}

// Config encapsulates all configuration for the siteproof pipeline.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Vision   Vision   `toml:"vision"`
	Classify Classify `toml:"classify"`
	Detect   Detect   `toml:"detect"`
}

// #endregion sections

// #region defaults
// Default returns a config with working defaults for a single-site layout
// rooted at dir.
func Default(dir string) Config {
	cp := classify.DefaultCutPoints()
	return Config{
		Paths: Paths{
			SiteDir:       filepath.Join(dir, "images"),
			DetectionsDir: filepath.Join(dir, "detections"),
			ReportDir:     filepath.Join(dir, "reports"),
			Database:      filepath.Join(dir, "siteproof.db"),
			FeedbackDB:    filepath.Join(dir, "feedback.db"),
			LockFile:      filepath.Join(dir, "siteproof.lock"),
		},
		Vision: Vision{
			Enabled:      false,
			Addr:         "localhost:50061",
			ReferenceSet: "stage-reference-v1",
		},
		Classify: Classify{
			Policy:           string(classify.PolicyLearned),
			InstallationCut:  cp.Installation,
			MountingCut:      cp.Mounting,
			AnomalyThreshold: 0.50,
		},
		Detect: Detect{
			PanelClass:    "solar_panel",
			MinConfidence: 0.5,
		},
	}
}

// #endregion defaults

// #region load
// Load parses the TOML config at path, falling back to defaults when the
// file does not exist, then applies environment overrides and validates.
func Load(path, dir string) (Config, error) {
	cfg := Default(dir)

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	default:
		return Config{}, fmt.Errorf("open config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv layers environment overrides on top of file values so deployments
// can redirect paths and endpoints without editing the config file.
func (c *Config) applyEnv() {
	if v := os.Getenv("SITEPROOF_DB"); v != "" {
		c.Paths.Database = v
	}
	if v := os.Getenv("SITEPROOF_FEEDBACK_DB"); v != "" {
		c.Paths.FeedbackDB = v
	}
	if v := os.Getenv("SITEPROOF_VISION_ADDR"); v != "" {
		c.Vision.Addr = v
		c.Vision.Enabled = true
	}
	if v := os.Getenv("SITEPROOF_POLICY"); v != "" {
		c.Classify.Policy = v
	}
	if v := os.Getenv("SITEPROOF_ANOMALY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Classify.AnomalyThreshold = f
		}
	}
}

// APIKey returns the vision service credential from the environment. It is
// never stored in the config file or embedded in source.
func (c *Config) APIKey() string {
	return os.Getenv("SITEPROOF_API_KEY")
}

// #endregion load

// #region validate
// Validate rejects configs that would misclassify every image.
func (c *Config) Validate() error {
	switch classify.Policy(c.Classify.Policy) {
	case classify.PolicyFixed, classify.PolicyLearned:
	default:
		return fmt.Errorf("unknown classify policy %q", c.Classify.Policy)
	}
	if c.Classify.MountingCut <= 0 || c.Classify.InstallationCut >= 1 {
		return fmt.Errorf("cut-points out of range: mounting=%v installation=%v",
			c.Classify.MountingCut, c.Classify.InstallationCut)
	}
	if c.Classify.MountingCut >= c.Classify.InstallationCut {
		return fmt.Errorf("mounting cut %v must be below installation cut %v",
			c.Classify.MountingCut, c.Classify.InstallationCut)
	}
	if c.Classify.AnomalyThreshold < 0 || c.Classify.AnomalyThreshold > 1 {
		return fmt.Errorf("anomaly threshold %v out of range", c.Classify.AnomalyThreshold)
	}
	if c.Vision.Enabled && c.Vision.Addr == "" {
		return errors.New("vision enabled without an address")
	}
	return nil
}

// CutPoints returns the configured fixed-policy cut-points.
func (c *Config) CutPoints() classify.CutPoints {
	return classify.CutPoints{
		Installation: c.Classify.InstallationCut,
		Mounting:     c.Classify.MountingCut,
	}
}

// #endregion validate
