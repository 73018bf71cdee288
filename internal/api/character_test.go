package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"character-crud-demo/backend/internal/models"
	"character-crud-demo/backend/internal/repository"
	"character-crud-demo/backend/internal/service"
	"character-crud-demo/backend/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*gin.Engine, *service.CharacterService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewCharacterService(repository.NewMemoryCharacterRepository(), nil, nil)
	r := gin.New()
	r.Use(errors.ErrorHandler())
	NewCharacterHandler(svc).RegisterRoutes(r)
	return r, svc
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestListEmptyIsArray(t *testing.T) {
	r, _ := setup(t)

	w := do(r, http.MethodGet, "/char", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateAndGet(t *testing.T) {
	r, _ := setup(t)

	w := do(r, http.MethodPost, "/char", `{"name":"Hermione","abilities":["Logic"],"bio":"Muggle-born witch"}`)
	require.Equal(t, http.StatusOK, w.Code)
	created := decode[models.Character](t, w)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Hermione", created.Name)

	w = do(r, http.MethodGet, "/char/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decode[models.Character](t, w))
}

func TestCreateIgnoresClientID(t *testing.T) {
	r, _ := setup(t)

	w := do(r, http.MethodPost, "/char", `{"id":"mine","name":"Ron","abilities":[],"bio":""}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.NotEqual(t, "mine", decode[models.Character](t, w).ID)
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	r, svc := setup(t)

	for _, body := range []string{
		`{"name":42}`,
		`{"abilities":"Logic"}`,
		`[1,2,3]`,
		`{"name":`,
		`{}`,
		`null`,
		`{"bio":"x","abilities":[]}`,
		`{"name":"Ron","bio":"x"}`,
		`{"name":"Ron","abilities":[]}`,
		`{"name":null,"abilities":null,"bio":null}`,
		`{"name":"Ron","abilities":null,"bio":""}`,
	} {
		w := do(r, http.MethodPost, "/char", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.Zero(t, svc.Count())
}

func TestCreateAcceptsEmptyValues(t *testing.T) {
	r, svc := setup(t)

	w := do(r, http.MethodPost, "/char", `{"name":"","abilities":[],"bio":""}`)
	require.Equal(t, http.StatusOK, w.Code)

	created := decode[models.Character](t, w)
	assert.Equal(t, "", created.Name)
	assert.Equal(t, []string{}, created.Abilities)
	assert.Equal(t, 1, svc.Count())
}

func TestUpdate(t *testing.T) {
	r, _ := setup(t)
	created := decode[models.Character](t, do(r, http.MethodPost, "/char", `{"name":"Ron","abilities":[],"bio":""}`))

	w := do(r, http.MethodPut, "/char/"+created.ID, `{"name":"Ron Weasley","abilities":["Chess"],"bio":"Keeper"}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.Character](t, w)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, []string{"Chess"}, updated.Abilities)

	got := decode[models.Character](t, do(r, http.MethodGet, "/char/"+created.ID, ""))
	assert.Equal(t, updated, got)
}

func TestUpdateMalformedBodyLeavesRecord(t *testing.T) {
	r, svc := setup(t)
	created := decode[models.Character](t, do(r, http.MethodPost, "/char", `{"name":"Ron","abilities":["Chess"],"bio":"Keeper"}`))

	for _, body := range []string{
		`{"bio":false}`,
		`{}`,
		`null`,
		`{"name":"Ronald","abilities":["Chess"]}`,
		`{"name":null,"abilities":["Chess"],"bio":"Keeper"}`,
	} {
		w := do(r, http.MethodPut, "/char/"+created.ID, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)

		got := decode[models.Character](t, do(r, http.MethodGet, "/char/"+created.ID, ""))
		assert.Equal(t, created, got, body)
	}
	assert.Equal(t, 1, svc.Count())
}

func TestDelete(t *testing.T) {
	r, svc := setup(t)
	created := decode[models.Character](t, do(r, http.MethodPost, "/char", `{"name":"Ron","abilities":[],"bio":""}`))

	w := do(r, http.MethodDelete, "/char/"+created.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Zero(t, svc.Count())
}

func TestMissingIDIsNotFound(t *testing.T) {
	r, svc := setup(t)
	existing := decode[models.Character](t, do(r, http.MethodPost, "/char", `{"name":"Ron","abilities":["Chess"],"bio":"Keeper"}`))

	for _, tc := range []struct{ method, body string }{
		{http.MethodGet, ""},
		{http.MethodPut, `{"name":"x","abilities":[],"bio":""}`},
		{http.MethodDelete, ""},
	} {
		w := do(r, tc.method, "/char/nope", tc.body)
		assert.Equal(t, http.StatusNotFound, w.Code, tc.method)
		assert.Equal(t, "Character not found", w.Body.String(), tc.method)

		assert.Equal(t, 1, svc.Count(), tc.method)
		got := decode[models.Character](t, do(r, http.MethodGet, "/char/"+existing.ID, ""))
		assert.Equal(t, existing, got, tc.method)
	}
}
