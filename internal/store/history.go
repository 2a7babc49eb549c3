package store

import (
	"sort"
	"time"

	"github.com/twbeatles/klotto-generator/internal/model"
)

// defaultMaxEntries caps the history when no option overrides it.
const defaultMaxEntries = 500

// Entry is one generated set in the history, newest first on disk.
type Entry struct {
	// Numbers holds the generated set sorted ascending.
	Numbers []int `json:"numbers"`

	// CreatedAt is the generation time in RFC 3339 form.
	CreatedAt string `json:"created_at"`
}

// History stores generated sets in a JSON file, newest first, with a
// cap that drops the oldest entries. It deduplicates by sorted numbers
// so the same set never appears twice regardless of pick order.
type History struct {
	path       string
	maxEntries int
	entries    []Entry
}

// HistoryOption configures a History store.
type HistoryOption func(*History)

// WithMaxEntries overrides the history cap.
func WithMaxEntries(n int) HistoryOption {
	return func(h *History) {
		if n > 0 {
			h.maxEntries = n
		}
	}
}

// OpenHistory loads the history file at path, creating an empty store
// when the file does not exist yet.
func OpenHistory(path string, opts ...HistoryOption) (*History, error) {
	h := &History{
		path:       path,
		maxEntries: defaultMaxEntries,
	}
	for _, opt := range opts {
		opt(h)
	}

	if err := readJSONFile(path, &h.entries); err != nil {
		return nil, err
	}
	return h, nil
}

// Add records a generated set. The numbers are stored sorted. Returns
// false without saving when the same set is already in the history.
func (h *History) Add(numbers []int) (bool, error) {
	set := sortedCopy(numbers)
	if h.IsDuplicate(set) {
		return false, nil
	}

	entry := Entry{
		Numbers:   set,
		CreatedAt: time.Now().Format(time.RFC3339),
	}

	// Newest first; the cap drops the oldest entries off the end.
	h.entries = append([]Entry{entry}, h.entries...)
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[:h.maxEntries]
	}

	if err := h.save(); err != nil {
		return false, err
	}
	return true, nil
}

// IsDuplicate reports whether the set (in any order) is already stored.
func (h *History) IsDuplicate(numbers []int) bool {
	set := sortedCopy(numbers)
	for _, e := range h.entries {
		if equalNumbers(e.Numbers, set) {
			return true
		}
	}
	return false
}

// All returns every entry, newest first.
func (h *History) All() []Entry {
	return h.entries
}

// Recent returns the newest n entries.
func (h *History) Recent(n int) []Entry {
	if n <= 0 || n > len(h.entries) {
		n = len(h.entries)
	}
	return h.entries[:n]
}

// Len returns how many entries are stored.
func (h *History) Len() int {
	return len(h.entries)
}

// Clear removes every entry and saves the empty store.
func (h *History) Clear() error {
	h.entries = []Entry{}
	return h.save()
}

// Statistics aggregates how often each number was generated.
func (h *History) Statistics() *model.HistoryStats {
	stats := &model.HistoryStats{
		TotalSets:    len(h.entries),
		NumberCounts: make(map[int]int, model.MaxNumber),
	}
	if len(h.entries) == 0 {
		return stats
	}

	// Seed every number so the least-common list surfaces numbers
	// that were never generated.
	for n := model.MinNumber; n <= model.MaxNumber; n++ {
		stats.NumberCounts[n] = 0
	}
	for _, e := range h.entries {
		for _, n := range e.Numbers {
			stats.NumberCounts[n]++
		}
	}

	counts := make([]model.NumberCount, 0, len(stats.NumberCounts))
	for n, c := range stats.NumberCounts {
		counts = append(counts, model.NumberCount{Number: n, Count: c})
	}

	// Most common: highest count first, smaller number breaking ties.
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Number < counts[j].Number
	})
	stats.MostCommon = topCounts(counts, 10)

	// Least common: lowest count first, smaller number breaking ties.
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count < counts[j].Count
		}
		return counts[i].Number < counts[j].Number
	})
	stats.LeastCommon = topCounts(counts, 10)

	return stats
}

// topCounts copies the first n counts (or fewer when the list is short).
func topCounts(counts []model.NumberCount, n int) []model.NumberCount {
	if n > len(counts) {
		n = len(counts)
	}
	out := make([]model.NumberCount, n)
	copy(out, counts[:n])
	return out
}

// save writes the history atomically.
func (h *History) save() error {
	return writeJSONFileAtomic(h.path, h.entries)
}
