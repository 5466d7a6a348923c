package rules

import "fmt"

// Duplicates groups element indexes by the value of key and returns the groups
// holding more than one element. Elements that are not objects or lack the key
// are skipped. Values are compared by their printed form, so keep keys to a
// single type (the sets API uses strings).
func Duplicates(collection []any, key string) map[string][]int {
	seen := map[string][]int{}
	for i, elem := range collection {
		rec, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		kv, ok := rec[key]
		if !ok || kv == nil {
			continue
		}
		k := fmt.Sprint(kv)
		seen[k] = append(seen[k], i)
	}
	for k, idx := range seen {
		if len(idx) < 2 {
			delete(seen, k)
		}
	}
	return seen
}
