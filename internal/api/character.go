package api

import (
	"fmt"
	"net/http"

	"character-crud-demo/backend/internal/models"
	"character-crud-demo/backend/internal/service"
	"character-crud-demo/backend/pkg/errors"
	"character-crud-demo/backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CharacterHandler struct {
	service *service.CharacterService
}

func NewCharacterHandler(service *service.CharacterService) *CharacterHandler {
	return &CharacterHandler{service: service}
}

// RegisterRoutes mounts the character endpoints on r.
func (h *CharacterHandler) RegisterRoutes(r gin.IRouter) {
	chars := r.Group("/char")
	{
		chars.GET("", h.ListCharacters)
		chars.POST("", h.CreateCharacter)
		chars.GET("/:id", h.GetCharacter)
		chars.PUT("/:id", h.UpdateCharacter)
		chars.DELETE("/:id", h.DeleteCharacter)
	}
}

func (h *CharacterHandler) ListCharacters(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ListCharacters(c.Request.Context()))
}

func (h *CharacterHandler) CreateCharacter(c *gin.Context) {
	req, ok := bindCharacterRequest(c)
	if !ok {
		return
	}

	character := h.service.CreateCharacter(c.Request.Context(), req)
	logger.FromContext(c).Info("Character created", "id", character.ID)
	c.JSON(http.StatusOK, character)
}

func (h *CharacterHandler) GetCharacter(c *gin.Context) {
	character, err := h.service.GetCharacter(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *CharacterHandler) UpdateCharacter(c *gin.Context) {
	req, ok := bindCharacterRequest(c)
	if !ok {
		return
	}

	character, err := h.service.UpdateCharacter(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *CharacterHandler) DeleteCharacter(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteCharacter(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	logger.FromContext(c).Info("Character deleted", "id", id)
	c.Status(http.StatusOK)
}

// characterPayload mirrors CharacterRequest with pointer fields so that a
// missing or null field can be told apart from an empty one.
type characterPayload struct {
	Name      *string   `json:"name"`
	Abilities *[]string `json:"abilities"`
	Bio       *string   `json:"bio"`
}

func (p characterPayload) request() (models.CharacterRequest, error) {
	switch {
	case p.Name == nil:
		return models.CharacterRequest{}, fmt.Errorf("missing field `name`")
	case p.Abilities == nil:
		return models.CharacterRequest{}, fmt.Errorf("missing field `abilities`")
	case p.Bio == nil:
		return models.CharacterRequest{}, fmt.Errorf("missing field `bio`")
	}
	return models.CharacterRequest{
		Name:      *p.Name,
		Abilities: *p.Abilities,
		Bio:       *p.Bio,
	}, nil
}

// bindCharacterRequest decodes the body structurally. Every field must be
// present and non-null, but empty strings and empty ability lists are accepted.
func bindCharacterRequest(c *gin.Context) (models.CharacterRequest, bool) {
	var payload characterPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		_ = c.Error(errors.NewDecodeError(err))
		return models.CharacterRequest{}, false
	}

	req, err := payload.request()
	if err != nil {
		_ = c.Error(errors.NewDecodeError(err))
		return models.CharacterRequest{}, false
	}
	return req, true
}
