package labels

// Sheet geometry. A printed page holds two columns of six labels.
const (
	PageColumns  = 2
	PageRows     = 6
	PageCapacity = PageColumns * PageRows
)

// TotalPages reports how many pages a batch of n labels occupies. An empty
// batch still renders one blank page.
func TotalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageCapacity - 1) / PageCapacity
}

// PageSlice returns the labels belonging to the given 0-based page. Pages
// outside the batch come back empty.
func PageSlice(batch []Label, page int) []Label {
	if page < 0 {
		return nil
	}
	start := page * PageCapacity
	if start >= len(batch) {
		return nil
	}
	end := start + PageCapacity
	if end > len(batch) {
		end = len(batch)
	}
	return batch[start:end]
}

// SlotFor maps a sequence index to its page and the 0-based slot within
// that page. Slots fill row by row, left box then right.
func SlotFor(sequenceIndex int) (page, slot int) {
	return sequenceIndex / PageCapacity, sequenceIndex % PageCapacity
}
