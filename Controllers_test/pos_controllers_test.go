package Controllers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
)

type draftResponse struct {
	Draft        *models.DraftOrder `json:"draft"`
	Total        float64            `json:"total"`
	DisplayTotal string             `json:"displayTotal"`
	CanSubmit    bool               `json:"canSubmit"`
}

func (e *testEnv) draftCall(t *testing.T, method, path string, body interface{}) (int, draftResponse) {
	t.Helper()
	w, resp := e.do(t, method, path, body)
	var d draftResponse
	if w.Code == http.StatusOK {
		decode(t, resp.Data, &d)
	}
	return w.Code, d
}

func (e *testEnv) refreshPOS(t *testing.T) services.POSState {
	t.Helper()
	w, resp := e.do(t, http.MethodPost, "/pos/refresh", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var state services.POSState
	decode(t, resp.Data, &state)
	return state
}

func TestPOSRefreshHidesTemporaryTables(t *testing.T) {
	env := setupEnv(t, true)

	state := env.refreshPOS(t)
	require.Len(t, state.Tables, 2)
	assert.Equal(t, "t1", state.Tables[0].ID)
	assert.Equal(t, "t2", state.Tables[1].ID)
	assert.Len(t, state.Menu, 3)
	assert.Empty(t, state.ActiveOrders)
}

func TestPOSSubmitWithBareTableReference(t *testing.T) {
	env := setupEnv(t, true)
	env.backend.flatTableRefs = true
	env.refreshPOS(t)

	env.draftCall(t, http.MethodPost, "/pos/tables/t1/select", nil)
	env.draftCall(t, http.MethodPost, "/pos/draft/items", jsonBody{"menuItemId": "m1"})
	code, d := env.draftCall(t, http.MethodPost, "/pos/draft/submit", nil)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, d.Draft.ServerOrderID)
	assert.False(t, d.Draft.IsNewOrder())

	code, _ = env.draftCall(t, http.MethodPost, "/pos/draft/submit", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Len(t, env.backend.created, 1)

	state := env.refreshPOS(t)
	require.Len(t, state.ActiveOrders, 1)
	assert.Equal(t, "t1", state.ActiveOrders[0].TableID())
	assert.True(t, state.Occupied["t1"])
}

func TestPOSDineInFlow(t *testing.T) {
	env := setupEnv(t, true)
	env.refreshPOS(t)

	code, d := env.draftCall(t, http.MethodPost, "/pos/tables/t1/select", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.OrderDineIn, d.Draft.Target.Type)
	assert.False(t, d.CanSubmit)

	env.draftCall(t, http.MethodPost, "/pos/draft/items", jsonBody{"menuItemId": "m1"})
	code, d = env.draftCall(t, http.MethodPost, "/pos/draft/items", jsonBody{"menuItemId": "m1"})
	require.Equal(t, http.StatusOK, code)
	require.Len(t, d.Draft.Lines, 1)
	assert.Equal(t, 2, d.Draft.Lines[0].Quantity)
	assert.Equal(t, 200.0, d.Total)
	assert.Equal(t, "Rs. 200.00", d.DisplayTotal)
	assert.True(t, d.CanSubmit)

	code, d = env.draftCall(t, http.MethodPost, "/pos/draft/submit", nil)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, d.Draft.ServerOrderID)
	assert.False(t, d.CanSubmit)
	assert.Equal(t, models.StatusSent, d.Draft.Lines[0].Status)

	require.Len(t, env.backend.created, 1)
	created := env.backend.created[0]
	assert.Equal(t, "t1", created.TableID)
	require.Len(t, created.Items, 1)
	assert.Equal(t, 2, created.Items[0].Quantity)
	assert.Equal(t, models.StatusSent, created.Items[0].Status)

	// Only the new line goes out on the second round.
	env.draftCall(t, http.MethodPost, "/pos/draft/items", jsonBody{"menuItemId": "m2"})
	code, d = env.draftCall(t, http.MethodPost, "/pos/draft/submit", nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, env.backend.appended, 1)
	require.Len(t, env.backend.appended[0], 1)
	assert.Equal(t, "m2", env.backend.appended[0][0].MenuItemID)
	assert.Len(t, d.Draft.Lines, 2)
	assert.Equal(t, 250.0, d.Total)

	w, _ := env.do(t, http.MethodPost, "/pos/bills", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "B-1", w.Header().Get("X-Bill-Number"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
	assert.Len(t, env.backend.bills, 1)

	code, d = env.draftCall(t, http.MethodGet, "/pos/draft", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, d.Draft)
}

func TestPOSBillFinalize(t *testing.T) {
	env := setupEnv(t, true)
	env.placeTableOrder(t, "t2", "m2")

	w, _ := env.do(t, http.MethodPost, "/pos/bills?finalize=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.backend.finalized)
	assert.Equal(t, "B-1", w.Header().Get("X-Bill-Number"))
}

func TestPOSSelectTableResumesActiveOrder(t *testing.T) {
	env := setupEnv(t, true)
	env.refreshPOS(t)

	env.draftCall(t, http.MethodPost, "/pos/tables/t1/select", nil)
	env.draftCall(t, http.MethodPost, "/pos/draft/items", jsonBody{"menuItemId": "m1"})
	_, submitted := env.draftCall(t, http.MethodPost, "/pos/draft/submit", nil)

	env.draftCall(t, http.MethodDelete, "/pos/draft", nil)
	state := env.refreshPOS(t)
	assert.True(t, state.Occupied["t1"])

	code, d := env.draftCall(t, http.MethodPost, "/pos/tables/t1/select", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, submitted.Draft.ServerOrderID, d.Draft.ServerOrderID)
	require.Len(t, d.Draft.Lines, 1)
	assert.Equal(t, models.StatusSent, d.Draft.Lines[0].Status)

	code, d = env.draftCall(t, http.MethodPost, "/pos/orders/"+submitted.Draft.ServerOrderID+"/select", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "t1", d.Draft.Target.TableID)
}

func TestPOSSubmitWarnings(t *testing.T) {
	env := setupEnv(t, true)
	env.refreshPOS(t)

	w, _ := env.do(t, http.MethodPost, "/pos/draft/submit", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	env.draftCall(t, http.MethodPost, "/pos/tables/t2/select", nil)
	w, _ = env.do(t, http.MethodPost, "/pos/draft/submit", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = env.do(t, http.MethodPost, "/pos/bills", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	env.draftCall(t, http.MethodPost, "/pos/draft/items", jsonBody{"menuItemId": "m2"})
	env.draftCall(t, http.MethodPost, "/pos/draft/submit", nil)
	w, _ = env.do(t, http.MethodPost, "/pos/draft/submit", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Len(t, env.backend.created, 1)
}

func TestPOSLookupErrors(t *testing.T) {
	env := setupEnv(t, true)
	env.refreshPOS(t)

	w, _ := env.do(t, http.MethodPost, "/pos/tables/nope/select", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = env.do(t, http.MethodPost, "/pos/orders/nope/select", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	env.draftCall(t, http.MethodPost, "/pos/tables/t1/select", nil)
	w, _ = env.do(t, http.MethodPost, "/pos/draft/items", jsonBody{"menuItemId": "nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = env.do(t, http.MethodPost, "/pos/draft/items", jsonBody{"menuItemId": "m3"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = env.do(t, http.MethodPost, "/pos/draft/items", jsonBody{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPOSChangeQuantity(t *testing.T) {
	env := setupEnv(t, true)
	env.refreshPOS(t)
	env.draftCall(t, http.MethodPost, "/pos/tables/t1/select", nil)
	env.draftCall(t, http.MethodPost, "/pos/draft/items", jsonBody{"menuItemId": "m1"})
	env.draftCall(t, http.MethodPost, "/pos/draft/items", jsonBody{"menuItemId": "m1"})

	code, d := env.draftCall(t, http.MethodPatch, "/pos/draft/items/m1", jsonBody{"delta": -1})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, d.Draft.Lines[0].Quantity)

	code, d = env.draftCall(t, http.MethodPatch, "/pos/draft/items/m1", jsonBody{"delta": -1})
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, d.Draft.Lines)

	w, _ := env.do(t, http.MethodPatch, "/pos/draft/items/m1", jsonBody{"delta": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPOSTakeawayAndDelivery(t *testing.T) {
	env := setupEnv(t, true)
	env.refreshPOS(t)

	code, d := env.draftCall(t, http.MethodPost, "/pos/takeaway", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.OrderTakeaway, d.Draft.Target.Type)
	assert.True(t, strings.HasPrefix(d.Draft.Target.Customer.Name, "Guest "))

	code, d = env.draftCall(t, http.MethodPost, "/pos/takeaway", jsonBody{"customerName": "Mira"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Mira", d.Draft.Target.Customer.Name)

	env.draftCall(t, http.MethodPost, "/pos/draft/items", jsonBody{"menuItemId": "m2"})
	env.draftCall(t, http.MethodPost, "/pos/draft/submit", nil)
	require.Len(t, env.backend.created, 1)
	assert.Equal(t, models.OrderTakeaway, env.backend.created[0].OrderType)
	require.NotNil(t, env.backend.created[0].CustomerDetails)
	assert.Equal(t, "Mira", env.backend.created[0].CustomerDetails.Name)

	w, _ := env.do(t, http.MethodPost, "/pos/delivery", models.CustomerDetails{Name: "Mira"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	code, d = env.draftCall(t, http.MethodPost, "/pos/delivery", models.CustomerDetails{
		Name: "Mira", Phone: "555-0101", Address: "12 Hill Rd",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.OrderDelivery, d.Draft.Target.Type)
}

func TestPOSStateIncludesDraft(t *testing.T) {
	env := setupEnv(t, true)
	env.refreshPOS(t)
	env.draftCall(t, http.MethodPost, "/pos/tables/t2/select", nil)

	w, resp := env.do(t, http.MethodGet, "/pos/state", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		State services.POSState `json:"state"`
		Draft draftResponse     `json:"draft"`
	}
	decode(t, resp.Data, &body)
	assert.Len(t, body.State.Tables, 2)
	require.NotNil(t, body.Draft.Draft)
	assert.Equal(t, "t2", body.Draft.Draft.Target.TableID)
}
