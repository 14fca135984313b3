package jar

import (
	"errors"
	"math/rand/v2"
)

// ErrNothingToPick is returned when the active collection has no open ideas.
var ErrNothingToPick = errors.New("no open ideas in this collection")

// Shuffle draws uniformly at random from the non-completed ideas of the
// active collection. Each call is an independent draw; the previous pick is
// not excluded.
func (c *Controller) Shuffle(active string) (Idea, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var pool []Idea
	for _, idea := range c.ideas {
		if idea.CollectionName() == active && !idea.Completed {
			pool = append(pool, idea)
		}
	}

	if len(pool) == 0 {
		return Idea{}, ErrNothingToPick
	}
	return pool[rand.IntN(len(pool))], nil
}
