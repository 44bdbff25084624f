// Package join implements an in-memory hash join over ordered sequences.
package join

// Index maps each key to the last item carrying it. A key error aborts the build.
func Index[T any, K comparable](items []T, key func(T) (K, error)) (map[K]T, error) {
	lookup := make(map[K]T, len(items))
	for _, item := range items {
		k, err := key(item)
		if err != nil {
			return nil, err
		}
		lookup[k] = item
	}
	return lookup, nil
}

// Probe walks right in order and merges every element whose key is in lookup.
// Elements with no key or no match are skipped.
func Probe[L, R any, K comparable, M any](lookup map[K]L, right []R, key func(R) (K, bool), merge func(L, R) M) []M {
	out := make([]M, 0, len(right))
	for _, item := range right {
		k, ok := key(item)
		if !ok {
			continue
		}
		match, ok := lookup[k]
		if !ok {
			continue
		}
		out = append(out, merge(match, item))
	}
	return out
}

// Hash is an inner join driven by right. Duplicate keys in left resolve to the
// last occurrence; output follows the order of right.
func Hash[L, R any, K comparable, M any](
	left []L,
	right []R,
	leftKey func(L) (K, error),
	rightKey func(R) (K, bool),
	merge func(L, R) M,
) ([]M, error) {
	lookup, err := Index(left, leftKey)
	if err != nil {
		return nil, err
	}
	return Probe(lookup, right, rightKey, merge), nil
}
