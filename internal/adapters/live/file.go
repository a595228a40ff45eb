package live

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beetlebot/travel-options/internal/core"
	"gopkg.in/yaml.v3"
)

// FileLegsProvider reads a leg snapshot exported to disk as a JSON array or
// a YAML list. Set TRAVEL_LEGS_FILE or sources.legsFile to enable.
type FileLegsProvider struct {
	path string
}

func NewFileLegsProvider(path string) *FileLegsProvider {
	return &FileLegsProvider{path: path}
}

func (p *FileLegsProvider) Name() string            { return "legs_file" }
func (p *FileLegsProvider) Tier() core.ProviderTier { return core.TierSelfHosted }
func (p *FileLegsProvider) Capabilities() []core.Capability {
	return []core.Capability{core.CapLegsSnapshot}
}

func (p *FileLegsProvider) Available() (bool, string) {
	if p.path == "" {
		return false, "set TRAVEL_LEGS_FILE (path to a JSON or YAML leg snapshot)"
	}
	if _, err := os.Stat(p.path); err != nil {
		return false, fmt.Sprintf("legs file not readable: %v", err)
	}
	return true, ""
}

func (p *FileLegsProvider) SnapshotSource(core.Query) string {
	return filepath.Clean(p.path)
}

func (p *FileLegsProvider) Legs(ctx context.Context, _ core.Query) ([]core.FlightLeg, error) {
	if p.path == "" {
		return nil, fmt.Errorf("legs file not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Clean(p.path))
	if err != nil {
		return nil, fmt.Errorf("legs file read: %w", err)
	}

	var legs []core.FlightLeg
	switch strings.ToLower(filepath.Ext(p.path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &legs); err != nil {
			return nil, fmt.Errorf("legs file decode yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &legs); err != nil {
			return nil, fmt.Errorf("legs file decode json: %w", err)
		}
	}

	if legs == nil {
		legs = []core.FlightLeg{}
	}
	return legs, nil
}
