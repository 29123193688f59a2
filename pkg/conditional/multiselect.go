package conditional

// TestMultiSelect reports whether at least one selection satisfies pred.
// A nil or empty selection list never matches.
func TestMultiSelect(pred func(key string) bool, selections []string) bool {
	for _, key := range selections {
		if pred(key) {
			return true
		}
	}
	return false
}

// doesObjectHaveNoKey treats nil and {} alike as "nothing selected here".
func doesObjectHaveNoKey(obj Data) bool {
	return len(obj) == 0
}
