package cart

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is the persisted form of a cart.
type Snapshot struct {
	UserID    uuid.UUID `json:"user_id"`
	Store     *StoreRef `json:"store,omitempty"`
	Lines     []Line    `json:"lines"`
	Seq       uint64    `json:"seq"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Cart) Snapshot() Snapshot {
	var store *StoreRef
	if c.store != nil {
		s := *c.store
		store = &s
	}
	return Snapshot{
		UserID:    c.userID,
		Store:     store,
		Lines:     c.Lines(),
		Seq:       c.seq,
		UpdatedAt: c.updatedAt,
	}
}

func Restore(s Snapshot) *Cart {
	lines := make([]Line, 0, len(s.Lines))
	for _, l := range s.Lines {
		if l.Quantity > 0 {
			lines = append(lines, l)
		}
	}
	return &Cart{
		userID:    s.UserID,
		store:     s.Store,
		lines:     lines,
		seq:       s.Seq,
		updatedAt: s.UpdatedAt,
	}
}
