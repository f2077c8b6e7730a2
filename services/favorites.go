package services

import "preschool-finder/utils"

// FavoritesStore is the capability the query flows use to flag favorites.
// Durable storage is left to the implementation.
type FavoritesStore interface {
	IsFavorite(id string) bool
	Add(id string)
	Remove(id string)
}

// MemoryFavorites keeps favorites in process memory. It is safe for
// concurrent use and forgets everything on exit.
type MemoryFavorites struct {
	ids *utils.IDSet
}

func NewMemoryFavorites(ids ...string) *MemoryFavorites {
	f := &MemoryFavorites{ids: utils.NewIDSet()}
	for _, id := range ids {
		f.ids.Add(id)
	}
	return f
}

func (f *MemoryFavorites) IsFavorite(id string) bool { return f.ids.Contains(id) }

func (f *MemoryFavorites) Add(id string) { f.ids.Add(id) }

func (f *MemoryFavorites) Remove(id string) { f.ids.Remove(id) }
