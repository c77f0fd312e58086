package balance

import "sort"

// Map maps balance coordinates to Balances. Reading an absent coordinate
// yields the zero Balance without inserting it, so lookups never mutate the
// map and the zero value behaves like an empty snapshot.
type Map map[Coordinate]Balance

// Get returns the Balance at the coordinate, or the zero Balance if absent.
func (m Map) Get(c Coordinate) Balance {
	if b, ok := m[c]; ok {
		return b
	}
	return Zero()
}

// Set returns a copy of m with the coordinate set to b. The receiver is left
// untouched.
func (m Map) Set(c Coordinate, b Balance) Map {
	out := make(Map, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[c] = b
	return out
}

// Merge returns a new Map holding the coordinate-wise sum of m and other.
// A coordinate absent from one side is treated as the zero Balance.
func (m Map) Merge(other Map) Map {
	out := make(Map, len(m)+len(other))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range other {
		out[k] = out.Get(k).Add(v)
	}
	return out
}

// Coordinates returns the map's coordinates in deterministic tuple order.
func (m Map) Coordinates() []Coordinate {
	keys := make([]Coordinate, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Equal reports whether both maps hold equal Balances at the same
// coordinates, treating absent coordinates as zero.
func (m Map) Equal(other Map) bool {
	for k, v := range m {
		if !v.Equal(other.Get(k)) {
			return false
		}
	}
	for k, v := range other {
		if !v.Equal(m.Get(k)) {
			return false
		}
	}
	return true
}
