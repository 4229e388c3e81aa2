// Package pagination slices item lists into pages and computes the
// windowed page controls shown next to a listing.
package pagination

// Paginate returns the 1-indexed page of items. Pages past the end come
// back empty instead of failing, so a stale page query degrades to "no
// results" rather than an error.
func Paginate[T any](items []T, page, perPage int) []T {
	if page < 1 || perPage < 1 {
		return nil
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return nil
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Entry is one control in a pagination window: either a page button or
// an ellipsis standing in for skipped pages.
type Entry struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

type Window struct {
	TotalPages  int     `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
	Entries     []Entry `json:"entries"`
}

// Compute builds the page controls for currentPage out of totalItems.
//
// At most maxVisible numbered buttons form a contiguous band centered on
// the current page; near an edge the band shifts inward so it never
// shrinks below min(maxVisible, totalPages). A jump to the first/last
// page (with an ellipsis when more than one page is skipped) is added
// outside the band. maxVisible is the caller's choice, typically
// smaller on narrow displays.
//
//	totalPages = 10, maxVisible = 5:
//	  page 1  → 1 2 3 4 5 … 10
//	  page 6  → 1 … 4 5 6 7 8 … 10
//	  page 10 → 1 … 6 7 8 9 10
func Compute(totalItems, perPage, currentPage, maxVisible int) Window {
	if perPage < 1 || maxVisible < 1 {
		return Window{}
	}
	totalPages := (totalItems + perPage - 1) / perPage
	if totalPages <= 1 {
		return Window{TotalPages: totalPages, CurrentPage: clamp(currentPage, 1, max(totalPages, 1))}
	}
	current := clamp(currentPage, 1, totalPages)

	half := maxVisible / 2
	start := current - half
	if start < 1 {
		start = 1
	}
	end := start + maxVisible - 1
	if end > totalPages {
		end = totalPages
	}
	// Shifted past the tail: pull the band back so it keeps full width.
	if end-start < maxVisible-1 {
		start = end - maxVisible + 1
		if start < 1 {
			start = 1
		}
	}

	entries := make([]Entry, 0, maxVisible+4)
	if start > 1 {
		entries = append(entries, Entry{Page: 1, Current: current == 1})
		if start > 2 {
			entries = append(entries, Entry{Ellipsis: true})
		}
	}
	for p := start; p <= end; p++ {
		entries = append(entries, Entry{Page: p, Current: p == current})
	}
	if end < totalPages {
		if end < totalPages-1 {
			entries = append(entries, Entry{Ellipsis: true})
		}
		entries = append(entries, Entry{Page: totalPages, Current: current == totalPages})
	}

	return Window{TotalPages: totalPages, CurrentPage: current, Entries: entries}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
