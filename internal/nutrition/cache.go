package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"nutriplan/internal/meal"
)

// CachedLookup wraps a Lookup to cache found results in a JSON file.
// Misses and errors are never cached.
type CachedLookup struct {
	realLookup    Lookup
	cache         map[string]meal.NutritionInfo
	cacheFilePath string
	logger        *zap.Logger
	mu            sync.Mutex
}

// NewCachedLookup creates a CachedLookup and loads any existing cache file.
func NewCachedLookup(realLookup Lookup, cacheFilePath string, logger *zap.Logger) (*CachedLookup, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &CachedLookup{
		realLookup:    realLookup,
		cache:         make(map[string]meal.NutritionInfo),
		cacheFilePath: cacheFilePath,
		logger:        logger,
	}

	cacheDir := filepath.Dir(cacheFilePath)
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", cacheDir, err)
	}

	data, err := os.ReadFile(cacheFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("nutrition cache file not found, starting empty", zap.String("path", cacheFilePath))
			return c, nil
		}
		return nil, fmt.Errorf("failed to read cache file %s: %w", cacheFilePath, err)
	}

	if err := json.Unmarshal(data, &c.cache); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data from %s: %w", cacheFilePath, err)
	}

	logger.Info("loaded nutrition cache", zap.Int("entries", len(c.cache)), zap.String("path", cacheFilePath))
	return c, nil
}

func cacheKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup serves from the cache, falling through to the wrapped Lookup on a miss.
func (c *CachedLookup) Lookup(ctx context.Context, name string) (meal.NutritionInfo, error) {
	key := cacheKey(name)

	c.mu.Lock()
	info, ok := c.cache[key]
	c.mu.Unlock()
	if ok {
		return info, nil
	}

	info, err := c.realLookup.Lookup(ctx, name)
	if err != nil {
		return meal.NutritionInfo{}, err
	}

	c.mu.Lock()
	c.cache[key] = info
	c.mu.Unlock()
	return info, nil
}

// Len returns the number of cached entries.
func (c *CachedLookup) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// SaveCache persists the current in-memory cache to the file system.
func (c *CachedLookup) SaveCache() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.MarshalIndent(c.cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := os.WriteFile(c.cacheFilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file %s: %w", c.cacheFilePath, err)
	}

	c.logger.Debug("saved nutrition cache", zap.Int("entries", len(c.cache)), zap.String("path", c.cacheFilePath))
	return nil
}
