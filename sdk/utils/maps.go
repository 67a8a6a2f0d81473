package utils

// MergeMaps merges two maps giving precedence to map2. When both sides hold
// a nested map under the same key the merge recurses, so a partial metadata
// block from a file only overrides the fields it actually sets.
func MergeMaps(map1, map2 map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(map1)+len(map2))

	for k, v := range map1 {
		result[k] = v
	}

	for k, v2 := range map2 {
		if v1, exists := result[k]; exists {
			m1, ok1 := v1.(map[string]interface{})
			m2, ok2 := v2.(map[string]interface{})
			if ok1 && ok2 {
				result[k] = MergeMaps(m1, m2)
				continue
			}
		}
		result[k] = v2
	}

	return result
}
