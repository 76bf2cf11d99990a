package Controllers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-pos/models"
)

func (e *testEnv) doMultipart(t *testing.T, method, path string, fields map[string]string, image []byte) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		part, err := mw.CreateFormFile("image", "dish.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp apiResponse
	decode(t, w.Body.Bytes(), &resp)
	return w, resp
}

func TestGetMenu(t *testing.T) {
	env := setupEnv(t, true)

	w, resp := env.do(t, http.MethodGet, "/menu", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.MenuItem
	decode(t, resp.Data, &items)
	assert.Len(t, items, 3)

	w, resp = env.do(t, http.MethodGet, "/menu?q=SIDE", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items = nil
	decode(t, resp.Data, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "Fries", items[0].Name)
}

func TestCreateMenuItemMultipart(t *testing.T) {
	env := setupEnv(t, true)

	w, resp := env.doMultipart(t, http.MethodPost, "/menu", map[string]string{
		"name":     "Dal Makhani",
		"price":    "120.5",
		"category": "Mains",
	}, []byte("\x89PNG fake"))
	require.Equal(t, http.StatusCreated, w.Code, resp.Message)

	var item models.MenuItem
	decode(t, resp.Data, &item)
	assert.Equal(t, "Dal Makhani", item.Name)
	assert.Equal(t, 120.5, item.Price)
	assert.True(t, item.Available())

	require.Len(t, env.backend.menuForms, 1)
	form := env.backend.menuForms[0]
	assert.Equal(t, "dish.png", form["image"])
	assert.Equal(t, "true", form["isAvailable"])
}

func TestCreateMenuItemValidation(t *testing.T) {
	env := setupEnv(t, true)

	w, _ := env.do(t, http.MethodPost, "/menu", jsonBody{"name": "Tea", "price": 0, "category": "Drinks"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = env.do(t, http.MethodPost, "/menu", jsonBody{"price": 20, "category": "Drinks"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.backend.menuForms)
}

func TestUpdateMenuItem(t *testing.T) {
	env := setupEnv(t, true)

	w, resp := env.do(t, http.MethodPut, "/menu/m1", jsonBody{
		"name": "Cheese Burger", "price": 130, "category": "Mains", "isAvailable": false,
	})
	require.Equal(t, http.StatusOK, w.Code, resp.Message)
	var item models.MenuItem
	decode(t, resp.Data, &item)
	assert.Equal(t, "Cheese Burger", item.Name)
	assert.False(t, item.Available())

	w, _ = env.do(t, http.MethodPut, "/menu/nope", jsonBody{"name": "X", "price": 1, "category": "Y"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetAvailability(t *testing.T) {
	env := setupEnv(t, true)

	w, _ := env.do(t, http.MethodPatch, "/menu/m3/availability", jsonBody{"isAvailable": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.backend.menu[2].Available())

	w, _ = env.do(t, http.MethodPatch, "/menu/m3/availability", jsonBody{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteMenuItem(t *testing.T) {
	env := setupEnv(t, true)

	w, resp := env.do(t, http.MethodDelete, "/menu/m1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Status)
}
