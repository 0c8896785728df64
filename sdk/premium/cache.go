package premium

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"finmate/internal/domain/premium"
)

const (
	cacheKeyStatus        = "premium_status"
	cacheKeyContributions = "goal_contributions"
)

// Cache is the local fallback store for the entitlement snapshot plus the
// mirrored goal-contribution history. One JSON file, read and written
// whole. A corrupt or missing entry reads as absence, never as an error.
type Cache struct {
	mu   sync.Mutex
	path string
}

// NewCache opens (or will create) the cache file at path.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

func (c *Cache) read() map[string]json.RawMessage {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return map[string]json.RawMessage{}
	}
	entries := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &entries); err != nil {
		// corrupt file: start over rather than failing the caller
		return map[string]json.RawMessage{}
	}
	return entries
}

func (c *Cache) write(entries map[string]json.RawMessage) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	tmp := c.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}

// Status returns the cached entitlement, or nil when absent or corrupt.
func (c *Cache) Status() *premium.Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.read()[cacheKeyStatus]
	if !ok {
		return nil
	}
	var status premium.Status
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil
	}
	if !status.Plan.Valid() {
		return nil
	}
	return &status
}

// SaveStatus overwrites the cached entitlement.
func (c *Cache) SaveStatus(status *premium.Status) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.read()
	raw, err := json.Marshal(status)
	if err != nil {
		return err
	}
	entries[cacheKeyStatus] = raw
	return c.write(entries)
}

// ClearStatus drops the cached entitlement, keeping other entries.
func (c *Cache) ClearStatus() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.read()
	delete(entries, cacheKeyStatus)
	return c.write(entries)
}

// Contribution is one locally mirrored goal deposit.
type Contribution struct {
	GoalID uint    `json:"goalId"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note,omitempty"`
	At     string  `json:"at"`
}

// Contributions returns the mirrored contribution history. Corrupt
// entries read as empty.
func (c *Cache) Contributions() []Contribution {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.read()[cacheKeyContributions]
	if !ok {
		return nil
	}
	var list []Contribution
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	return list
}

// AppendContribution mirrors one deposit locally so goal charts can
// render without the backend.
func (c *Cache) AppendContribution(contribution Contribution) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.read()
	var list []Contribution
	if raw, ok := entries[cacheKeyContributions]; ok {
		_ = json.Unmarshal(raw, &list)
	}
	list = append(list, contribution)
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	entries[cacheKeyContributions] = raw
	return c.write(entries)
}
