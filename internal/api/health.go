package api

import (
	"fmt"

	"character-crud-demo/backend/internal/service"
	"character-crud-demo/backend/pkg/health"
)

// RegisterStoreCheck reports the character store as a critical component.
func RegisterStoreCheck(checker *health.Checker, svc *service.CharacterService) {
	checker.RegisterCheck("store", true, func() (health.Status, string, error) {
		return health.StatusUp, fmt.Sprintf("%d characters", svc.Count()), nil
	})
}
