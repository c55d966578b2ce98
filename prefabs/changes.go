package prefabs

import "time"

// ChangeTracker remembers the last seen modification time of prefab files on
// disk so repeated watcher events for an unchanged file can be ignored.
type ChangeTracker struct {
	seen map[string]time.Time
}

func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{seen: map[string]time.Time{}}
}

// Changed reports whether name differs from the last call. A file that has
// no copy on disk counts as changed once, since loads fall back to the
// embedded version.
func (c *ChangeTracker) Changed(name string) bool {
	clean := cleanPrefabPath(name)
	mod, ok := ModTime(clean)
	last, seen := c.seen[clean]
	if !ok {
		if !seen {
			return false
		}
		delete(c.seen, clean)
		return true
	}
	c.seen[clean] = mod
	return !seen || !mod.Equal(last)
}
