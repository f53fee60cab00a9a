// ABOUTME: Scalar aggregates and ordered grouping over record collections
// ABOUTME: Group order follows the supplied keys, never the arrival order of records
package aggregate

// Number is any type Sum can total.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Count returns how many items satisfy pred. A nil pred counts every item.
func Count[T any](items []T, pred func(T) bool) int {
	if pred == nil {
		return len(items)
	}
	n := 0
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}

// Sum totals field over items. An empty collection sums to zero.
func Sum[T any, N Number](items []T, field func(T) N) N {
	var total N
	for _, item := range items {
		total += field(item)
	}
	return total
}

// Group is one ordered bucket of a GroupBy result.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// GroupBy partitions items by key. The result has exactly one group per
// entry of ordered, in that order, including empty groups. Items whose key
// is not listed are left out; a repeated key collects its items in its
// first position and stays empty afterwards.
func GroupBy[K comparable, T any](items []T, key func(T) K, ordered []K) []Group[K, T] {
	groups := make([]Group[K, T], len(ordered))
	index := make(map[K]int, len(ordered))
	for i, k := range ordered {
		groups[i] = Group[K, T]{Key: k, Items: []T{}}
		if _, seen := index[k]; !seen {
			index[k] = i
		}
	}

	for _, item := range items {
		if i, ok := index[key(item)]; ok {
			groups[i].Items = append(groups[i].Items, item)
		}
	}
	return groups
}

// Lookup returns the items of the group keyed k, or nil.
func Lookup[K comparable, T any](groups []Group[K, T], k K) []T {
	for _, g := range groups {
		if g.Key == k {
			return g.Items
		}
	}
	return nil
}
