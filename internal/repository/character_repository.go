package repository

import (
	"sync"

	"character-crud-demo/backend/internal/models"
)

// CharacterRepository is the storage contract for characters. Implementations
// hand out copies, never references to stored records.
type CharacterRepository interface {
	List() []models.Character
	Insert(character models.Character)
	Find(id string) (models.Character, bool)
	Update(id string, fields models.CharacterFields) (models.Character, bool)
	Remove(id string) bool
	Len() int
}

// MemoryCharacterRepository keeps characters in insertion order. All access
// goes through one exclusive lock held for the whole operation.
type MemoryCharacterRepository struct {
	mu         sync.Mutex
	characters []models.Character
}

// NewMemoryCharacterRepository creates an empty in-memory repository
func NewMemoryCharacterRepository() *MemoryCharacterRepository {
	return &MemoryCharacterRepository{characters: []models.Character{}}
}

func (r *MemoryCharacterRepository) List() []models.Character {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Character, len(r.characters))
	for i, c := range r.characters {
		out[i] = c.Clone()
	}
	return out
}

func (r *MemoryCharacterRepository) Insert(character models.Character) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.characters = append(r.characters, character.Clone())
}

func (r *MemoryCharacterRepository) Find(id string) (models.Character, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Character{}, false
	}
	return r.characters[i].Clone(), true
}

func (r *MemoryCharacterRepository) Update(id string, fields models.CharacterFields) (models.Character, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Character{}, false
	}
	r.characters[i].Apply(fields)
	return r.characters[i].Clone(), true
}

func (r *MemoryCharacterRepository) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	r.characters = append(r.characters[:i], r.characters[i+1:]...)
	return true
}

func (r *MemoryCharacterRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.characters)
}

// indexOf must be called with mu held.
func (r *MemoryCharacterRepository) indexOf(id string) int {
	for i := range r.characters {
		if r.characters[i].ID == id {
			return i
		}
	}
	return -1
}
