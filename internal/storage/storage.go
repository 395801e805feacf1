package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"nutriplan/internal/planner"
)

// versionLayout keeps archive file names sortable and free of colons.
const versionLayout = "20060102T150405Z"

// PlanArchive provides a file-based export of saved meal plans. Each plan
// keeps only its latest version on disk.
type PlanArchive struct {
	basePath string
}

// NewPlanArchive creates a new PlanArchive and ensures the base directory exists.
func NewPlanArchive(basePath string) (*PlanArchive, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory %s: %w", basePath, err)
	}
	return &PlanArchive{basePath: basePath}, nil
}

// BasePath returns the archive directory.
func (s *PlanArchive) BasePath() string {
	return s.basePath
}

func (s *PlanArchive) versionedPath(planID string, version time.Time) string {
	filename := fmt.Sprintf("%s_%s.json", planID, version.UTC().Format(versionLayout))
	return filepath.Join(s.basePath, filename)
}

// Save writes plan as a new version and removes older versions. It returns
// the path of the written file.
func (s *PlanArchive) Save(plan planner.SavedPlan, version time.Time) (string, error) {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal meal plan: %w", err)
	}

	if err := s.RemoveStaleVersions(plan.ID); err != nil {
		return "", err
	}

	filePath := s.versionedPath(plan.ID, version)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write meal plan file: %w", err)
	}
	return filePath, nil
}

// Load reads the latest archived version of a plan.
func (s *PlanArchive) Load(planID string) (*planner.SavedPlan, error) {
	versions, err := s.versions(planID)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("meal plan %s is not archived: %w", planID, os.ErrNotExist)
	}

	data, err := os.ReadFile(versions[len(versions)-1])
	if err != nil {
		return nil, fmt.Errorf("failed to read meal plan file: %w", err)
	}

	var plan planner.SavedPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal meal plan: %w", err)
	}
	return &plan, nil
}

// Exists checks if any version of a plan is archived.
func (s *PlanArchive) Exists(planID string) bool {
	versions, err := s.versions(planID)
	return err == nil && len(versions) > 0
}

// List returns the IDs of every archived plan in name order.
func (s *PlanArchive) List() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.basePath, "*_*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob archive files: %w", err)
	}

	seen := make(map[string]bool)
	var ids []string
	for _, m := range matches {
		base := strings.TrimSuffix(filepath.Base(m), ".json")
		i := strings.LastIndex(base, "_")
		if i <= 0 || seen[base[:i]] {
			continue
		}
		seen[base[:i]] = true
		ids = append(ids, base[:i])
	}
	sort.Strings(ids)
	return ids, nil
}

// RemoveStaleVersions removes all files associated with a planID.
func (s *PlanArchive) RemoveStaleVersions(planID string) error {
	matches, err := s.versions(planID)
	if err != nil {
		return err
	}
	for _, match := range matches {
		if err := os.Remove(match); err != nil {
			return fmt.Errorf("failed to remove stale file %s: %w", match, err)
		}
	}
	return nil
}

func (s *PlanArchive) versions(planID string) ([]string, error) {
	pattern := filepath.Join(s.basePath, fmt.Sprintf("%s_*.json", planID))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob plan versions: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}
