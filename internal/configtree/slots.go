package configtree

import "github.com/ra-configtree/ratree/internal/schema"

// slotTable is the Computed Slot Table: a stable-key indexed store of
// optional shared *schema.Local values, kept separate from the arena so
// that invalidating a cache never touches tree structure. It carries no
// lock of its own — the facade's single RWMutex guards it, same as the
// arena.
type slotTable struct {
	values []*schema.Local
}

func newSlotTable() *slotTable {
	return &slotTable{}
}

// alloc reserves a new, empty slot and returns its key.
func (t *slotTable) alloc() SlotKey {
	t.values = append(t.values, nil)
	return SlotKey(len(t.values) - 1)
}

// get returns the cached value, or nil if the slot is empty.
func (t *slotTable) get(key SlotKey) *schema.Local {
	return t.values[key]
}

// set stores a freshly computed value.
func (t *slotTable) set(key SlotKey, v *schema.Local) {
	t.values[key] = v
}

// clear empties the slot, dropping the tree's reference to the cached
// value. External holders of a prior read keep it alive until they drop
// it themselves — consistent with the linearizable-read contract.
func (t *slotTable) clear(key SlotKey) {
	t.values[key] = nil
}
