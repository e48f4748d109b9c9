package search

// PageItem is one slot of the pagination bar. Ellipsis slots have Page 0.
type PageItem struct {
	Page     int
	Current  bool
	Ellipsis bool
}

// Window lays out the pagination bar for current of total pages: the first
// page, a run of at most maxVisible pages around current, and the last page,
// with ellipses where pages are skipped.
func Window(current, total, maxVisible int) []PageItem {
	if total <= 1 {
		return nil
	}
	if maxVisible < 1 {
		maxVisible = 1
	}

	start := max(1, current-maxVisible/2)
	end := min(total, start+maxVisible-1)
	if end-start < maxVisible-1 {
		start = max(1, end-maxVisible+1)
	}

	var items []PageItem
	if start > 1 {
		items = append(items, PageItem{Page: 1})
		if start > 2 {
			items = append(items, PageItem{Ellipsis: true})
		}
	}
	for p := start; p <= end; p++ {
		items = append(items, PageItem{Page: p, Current: p == current})
	}
	if end < total {
		if end < total-1 {
			items = append(items, PageItem{Ellipsis: true})
		}
		items = append(items, PageItem{Page: total})
	}
	return items
}
