package service

import (
	"context"

	"character-crud-demo/backend/internal/idgen"
	"character-crud-demo/backend/internal/models"
	"character-crud-demo/backend/internal/repository"
	"character-crud-demo/backend/pkg/errors"
)

// ErrCharacterNotFound is returned when no character has the requested id.
var ErrCharacterNotFound = errors.NewNotFoundError("Character not found")

// OperationRecorder receives a notification for every successful mutation.
type OperationRecorder interface {
	RecordOperation(ctx context.Context, op string)
}

// CharacterService implements the character operations on top of a repository
type CharacterService struct {
	repo     repository.CharacterRepository
	generate idgen.Generator
	recorder OperationRecorder
}

// NewCharacterService creates a character service. A nil generator falls back
// to idgen.Generate and a nil recorder disables operation metrics.
func NewCharacterService(repo repository.CharacterRepository, generate idgen.Generator, recorder OperationRecorder) *CharacterService {
	if generate == nil {
		generate = idgen.Generate
	}
	return &CharacterService{
		repo:     repo,
		generate: generate,
		recorder: recorder,
	}
}

func (s *CharacterService) ListCharacters(ctx context.Context) []models.Character {
	return s.repo.List()
}

func (s *CharacterService) CreateCharacter(ctx context.Context, req models.CharacterRequest) models.Character {
	character := models.Character{ID: s.generate()}
	character.Apply(req.Fields())

	s.repo.Insert(character)
	s.record(ctx, "create")
	return character
}

func (s *CharacterService) GetCharacter(ctx context.Context, id string) (models.Character, error) {
	character, ok := s.repo.Find(id)
	if !ok {
		return models.Character{}, ErrCharacterNotFound
	}
	return character, nil
}

func (s *CharacterService) UpdateCharacter(ctx context.Context, id string, req models.CharacterRequest) (models.Character, error) {
	character, ok := s.repo.Update(id, req.Fields())
	if !ok {
		return models.Character{}, ErrCharacterNotFound
	}
	s.record(ctx, "update")
	return character, nil
}

func (s *CharacterService) DeleteCharacter(ctx context.Context, id string) error {
	if !s.repo.Remove(id) {
		return ErrCharacterNotFound
	}
	s.record(ctx, "delete")
	return nil
}

// Seed inserts the given records with freshly generated ids.
func (s *CharacterService) Seed(ctx context.Context, reqs ...models.CharacterRequest) []models.Character {
	seeded := make([]models.Character, 0, len(reqs))
	for _, req := range reqs {
		character := models.Character{ID: s.generate()}
		character.Apply(req.Fields())
		s.repo.Insert(character)
		seeded = append(seeded, character)
	}
	return seeded
}

// Count returns the number of stored characters
func (s *CharacterService) Count() int {
	return s.repo.Len()
}

func (s *CharacterService) record(ctx context.Context, op string) {
	if s.recorder != nil {
		s.recorder.RecordOperation(ctx, op)
	}
}

// DefaultSeed is the record the demo starts with.
func DefaultSeed() []models.CharacterRequest {
	return []models.CharacterRequest{
		{
			Name:      "Harry",
			Abilities: []string{"Parcel Tongue"},
			Bio:       "Orphaned by Voldemort",
		},
	}
}
