package store

import (
	"errors"
	"time"
)

// ErrIndexOutOfRange is returned when removing a favorite by an index
// that does not exist.
var ErrIndexOutOfRange = errors.New("favorite index out of range")

// Favorite is one user-saved set with an optional memo.
type Favorite struct {
	// Numbers holds the saved set in the order the user entered it.
	Numbers []int `json:"numbers"`

	// Memo is a free-form note ("birthday numbers").
	Memo string `json:"memo"`

	// CreatedAt is the save time in RFC 3339 form.
	CreatedAt string `json:"created_at"`
}

// Favorites stores user-saved sets in a JSON file in append order.
// Unlike History, the numbers keep the order the user entered and
// deduplication compares that order too.
type Favorites struct {
	path  string
	items []Favorite
}

// OpenFavorites loads the favorites file at path, creating an empty
// store when the file does not exist yet.
func OpenFavorites(path string) (*Favorites, error) {
	f := &Favorites{path: path}
	if err := readJSONFile(path, &f.items); err != nil {
		return nil, err
	}
	return f, nil
}

// Add appends a favorite. Returns false without saving when the same
// numbers are already stored.
func (f *Favorites) Add(numbers []int, memo string) (bool, error) {
	for _, item := range f.items {
		if equalNumbers(item.Numbers, numbers) {
			return false, nil
		}
	}

	f.items = append(f.items, Favorite{
		Numbers:   numbers,
		Memo:      memo,
		CreatedAt: time.Now().Format(time.RFC3339),
	})

	if err := f.save(); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the favorite at the zero-based index.
func (f *Favorites) Remove(index int) error {
	if index < 0 || index >= len(f.items) {
		return ErrIndexOutOfRange
	}
	f.items = append(f.items[:index], f.items[index+1:]...)
	return f.save()
}

// All returns every favorite in append order.
func (f *Favorites) All() []Favorite {
	return f.items
}

// Len returns how many favorites are stored.
func (f *Favorites) Len() int {
	return len(f.items)
}

// save writes the favorites atomically.
func (f *Favorites) save() error {
	return writeJSONFileAtomic(f.path, f.items)
}
