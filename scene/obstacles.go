package scene

import (
	"github.com/milk9111/portal2d/common"
	"github.com/milk9111/portal2d/physics"
)

// ObstacleSet is the ordered set of obstacles currently in the scene.
// Removing a conditional obstacle is how it is switched off; adding it back
// appends it at the end.
type ObstacleSet struct {
	items []*physics.Obstacle
}

func (s *ObstacleSet) All() []*physics.Obstacle {
	return s.items
}

func (s *ObstacleSet) Len() int {
	return len(s.items)
}

func (s *ObstacleSet) indexOf(name string) int {
	for i, o := range s.items {
		if o.Name == name {
			return i
		}
	}
	return -1
}

func (s *ObstacleSet) Contains(name string) bool {
	return s.indexOf(name) >= 0
}

func (s *ObstacleSet) Get(name string) (*physics.Obstacle, bool) {
	if i := s.indexOf(name); i >= 0 {
		return s.items[i], true
	}
	return nil, false
}

// Add appends o unless an obstacle with the same name is present.
func (s *ObstacleSet) Add(o *physics.Obstacle) bool {
	if o == nil || s.Contains(o.Name) {
		return false
	}
	s.items = append(s.items, o)
	return true
}

func (s *ObstacleSet) Remove(name string) bool {
	i := s.indexOf(name)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// Touching reports whether r touches any obstacle in the set.
func (s *ObstacleSet) Touching(r common.Rect) bool {
	for _, o := range s.items {
		if o.Touching(r) {
			return true
		}
	}
	return false
}
