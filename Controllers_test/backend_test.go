package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/client"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/router"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/session"
	"github.com/yeremiapane/restaurant-pos/utils"
)

const (
	validToken = "backend-token"
	shopID     = "shop-1"
)

// fakeBackend is an in-memory stand-in for the restaurant REST backend.
type fakeBackend struct {
	mu        sync.Mutex
	token     string
	tables    []models.Table
	menu      []models.MenuItem
	orders    map[string]*models.Order
	order     []string
	nextID    int
	bills     []string
	finalized int
	created   []models.CreateOrderRequest
	appended  [][]models.OrderLinePayload
	public    []models.PublicOrderRequest
	employees []models.Employee
	dashboard models.Dashboard
	menuForms []map[string]string
	// flatTableRefs answers with tableId as a bare id, the way an
	// unpopulated reference comes back.
	flatTableRefs bool
}

func newFakeBackend() *fakeBackend {
	no := false
	return &fakeBackend{
		token: validToken,
		tables: []models.Table{
			{ID: "t1", Name: "Table 1", Capacity: 4},
			{ID: "t2", Name: "Table 2", Capacity: 2},
			{ID: "qr-tmp", Name: "QR 9", IsTemporary: true},
		},
		menu: []models.MenuItem{
			{ID: "m1", Name: "Burger", Price: 100, Category: "Mains"},
			{ID: "m2", Name: "Fries", Price: 50, Category: "Sides"},
			{ID: "m3", Name: "Soup", Price: 80, Category: "Starters", IsAvailable: &no},
		},
		orders: make(map[string]*models.Order),
		employees: []models.Employee{
			{ID: "e1", Name: "Asha", Email: "asha@shop.test", Role: "Cashier"},
			{ID: "e2", Name: "Ravi", Email: "ravi@shop.test", Role: "Waiter"},
		},
		dashboard: models.Dashboard{
			KPIs:       models.KPIs{TotalRevenue: 15000.5, TotalOrders: 30, AverageOrderValue: 500},
			SalesTrend: models.SalesTrend{Labels: []string{"Mon", "Tue", "Wed"}, Data: []float64{4000, 5000, 6000.5}},
			EmployeePerformance: []models.EmployeePerformance{
				{WorkerID: "e2", WorkerName: "Ravi", BillsCount: 12, TotalSales: 6000, AOV: 500},
			},
		},
	}
}

func apiError(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}

func (b *fakeBackend) requireToken(c *gin.Context) {
	b.mu.Lock()
	token := b.token
	b.mu.Unlock()
	if c.GetHeader("Authorization") != "Bearer "+token {
		apiError(c, http.StatusUnauthorized, "Token is not valid")
		return
	}
	c.Next()
}

func (b *fakeBackend) revokeToken() {
	b.mu.Lock()
	b.token = "rotated"
	b.mu.Unlock()
}

func (b *fakeBackend) newID(prefix string) string {
	b.nextID++
	return fmt.Sprintf("%s-%d", prefix, b.nextID)
}

func (b *fakeBackend) tableByID(id string) *models.Table {
	for i := range b.tables {
		if b.tables[i].ID == id {
			t := b.tables[i]
			return &t
		}
	}
	return nil
}

func (b *fakeBackend) addItems(o *models.Order, items []models.OrderLinePayload) {
	for _, item := range items {
		status := item.Status
		if status == "" {
			status = models.StatusSent
		}
		o.Items = append(o.Items, models.OrderItem{
			ID:         b.newID("item"),
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
			Status:     status,
		})
	}
}

func (b *fakeBackend) activeOrders() []interface{} {
	out := []interface{}{}
	for _, id := range b.order {
		if o, ok := b.orders[id]; ok {
			out = append(out, b.wire(o))
		}
	}
	return out
}

// wire is the order as the backend would serialize it.
func (b *fakeBackend) wire(o *models.Order) interface{} {
	if !b.flatTableRefs || o.Table == nil {
		return o
	}
	raw, _ := json.Marshal(o)
	var flat map[string]interface{}
	_ = json.Unmarshal(raw, &flat)
	flat["tableId"] = o.Table.ID
	return flat
}

func (b *fakeBackend) find(id string) (*models.Order, bool) {
	o, ok := b.orders[id]
	return o, ok
}

func (b *fakeBackend) engine() *gin.Engine {
	r := gin.New()

	r.POST("/api/login", func(c *gin.Context) {
		var creds models.Credentials
		_ = c.ShouldBindJSON(&creds)
		if creds.Email != "owner@shop.test" || creds.Password != "secret" {
			apiError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		c.JSON(http.StatusOK, models.AuthResponse{
			Token: validToken,
			User:  &models.Profile{ID: "u1", Name: "Owner", Email: creds.Email, Role: "Owner"},
		})
	})
	r.POST("/api/signup", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"message": "Restaurant registered"})
	})

	pub := r.Group("/api/public")
	pub.GET("/menu", func(c *gin.Context) {
		if c.Query("shopId") != shopID {
			apiError(c, http.StatusNotFound, "Restaurant not found")
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		c.JSON(http.StatusOK, models.PublicMenu{ShopName: "Komsyte Cafe", MenuItems: b.menu})
	})
	pub.POST("/order", func(c *gin.Context) {
		var req models.PublicOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apiError(c, http.StatusBadRequest, err.Error())
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		b.public = append(b.public, req)
		o := &models.Order{ID: b.newID("order"), OrderType: models.OrderDineInQR, Table: b.tableByID(req.TableID)}
		b.addItems(o, req.Items)
		b.orders[o.ID] = o
		b.order = append(b.order, o.ID)
		c.JSON(http.StatusCreated, b.wire(o))
	})
	pub.PUT("/order/:id", func(c *gin.Context) {
		var req models.PublicOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apiError(c, http.StatusBadRequest, err.Error())
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		o, ok := b.find(c.Param("id"))
		if !ok {
			apiError(c, http.StatusNotFound, "Order not found")
			return
		}
		b.public = append(b.public, req)
		b.addItems(o, req.Items)
		c.JSON(http.StatusOK, b.wire(o))
	})
	pub.GET("/order/:id", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		o, ok := b.find(c.Param("id"))
		if !ok {
			apiError(c, http.StatusNotFound, "Order not found")
			return
		}
		c.JSON(http.StatusOK, b.wire(o))
	})

	api := r.Group("/api")
	api.Use(b.requireToken)

	api.GET("/profile", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.Profile{
			ID: "u1", Name: "Owner", Role: "Owner",
			Restaurant: &models.Shop{ID: shopID, ShopName: "Komsyte Cafe"},
		})
	})

	api.GET("/tables", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		c.JSON(http.StatusOK, b.tables)
	})
	api.POST("/tables", func(c *gin.Context) {
		var form models.TableForm
		_ = c.ShouldBindJSON(&form)
		b.mu.Lock()
		defer b.mu.Unlock()
		t := models.Table{ID: b.newID("table"), Name: form.Name, Capacity: form.Capacity}
		b.tables = append(b.tables, t)
		c.JSON(http.StatusCreated, t)
	})
	api.DELETE("/tables/:id", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, t := range b.tables {
			if t.ID == c.Param("id") {
				b.tables = append(b.tables[:i], b.tables[i+1:]...)
				c.JSON(http.StatusOK, gin.H{"message": "Table deleted"})
				return
			}
		}
		apiError(c, http.StatusNotFound, "Table not found")
	})

	api.GET("/menu", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		c.JSON(http.StatusOK, b.menu)
	})
	api.POST("/menu", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		item, fields := b.menuFromForm(c)
		item.ID = b.newID("menu")
		b.menuForms = append(b.menuForms, fields)
		b.menu = append(b.menu, item)
		c.JSON(http.StatusCreated, item)
	})
	api.PUT("/menu/:id", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		idx := -1
		for i, m := range b.menu {
			if m.ID == c.Param("id") {
				idx = i
			}
		}
		if idx < 0 {
			apiError(c, http.StatusNotFound, "Menu item not found")
			return
		}
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			item, fields := b.menuFromForm(c)
			item.ID = b.menu[idx].ID
			b.menuForms = append(b.menuForms, fields)
			b.menu[idx] = item
			c.JSON(http.StatusOK, item)
			return
		}
		var body struct {
			IsAvailable *bool `json:"isAvailable"`
		}
		_ = c.ShouldBindJSON(&body)
		b.menu[idx].IsAvailable = body.IsAvailable
		c.JSON(http.StatusOK, b.menu[idx])
	})
	api.DELETE("/menu/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
	})

	api.GET("/orders/:id", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c.Param("id") == "active" {
			c.JSON(http.StatusOK, b.activeOrders())
			return
		}
		o, ok := b.find(c.Param("id"))
		if !ok {
			apiError(c, http.StatusNotFound, "Order not found")
			return
		}
		c.JSON(http.StatusOK, b.wire(o))
	})
	api.POST("/orders", func(c *gin.Context) {
		var req models.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apiError(c, http.StatusBadRequest, err.Error())
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		b.created = append(b.created, req)
		o := &models.Order{
			ID:              b.newID("order"),
			OrderType:       req.OrderType,
			Table:           b.tableByID(req.TableID),
			CustomerDetails: req.CustomerDetails,
			KOTNumber:       len(b.created),
		}
		b.addItems(o, req.Items)
		b.orders[o.ID] = o
		b.order = append(b.order, o.ID)
		c.JSON(http.StatusCreated, b.wire(o))
	})
	api.PUT("/orders/:id/items", func(c *gin.Context) {
		var req models.AppendItemsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apiError(c, http.StatusBadRequest, err.Error())
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		o, ok := b.find(c.Param("id"))
		if !ok {
			apiError(c, http.StatusNotFound, "Order not found")
			return
		}
		b.appended = append(b.appended, req.Items)
		b.addItems(o, req.Items)
		c.JSON(http.StatusOK, b.wire(o))
	})
	api.PUT("/orders/:id/item/:itemId", func(c *gin.Context) {
		var req models.StatusUpdateRequest
		_ = c.ShouldBindJSON(&req)
		b.mu.Lock()
		defer b.mu.Unlock()
		o, ok := b.find(c.Param("id"))
		if !ok {
			apiError(c, http.StatusNotFound, "Order not found")
			return
		}
		for i := range o.Items {
			if o.Items[i].ID == c.Param("itemId") {
				o.Items[i].Status = req.Status
				c.JSON(http.StatusOK, b.wire(o))
				return
			}
		}
		apiError(c, http.StatusNotFound, "Item not found")
	})
	api.GET("/kds", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		c.JSON(http.StatusOK, b.activeOrders())
	})
	bill := func(c *gin.Context) {
		var req models.BillRequest
		_ = c.ShouldBindJSON(&req)
		b.mu.Lock()
		defer b.mu.Unlock()
		o, ok := b.find(req.OrderID)
		if !ok {
			apiError(c, http.StatusNotFound, "Order not found")
			return
		}
		var total float64
		for _, item := range o.Items {
			total += item.Price * float64(item.Quantity)
		}
		delete(b.orders, o.ID)
		b.bills = append(b.bills, o.ID)
		c.JSON(http.StatusCreated, models.Bill{
			ID:          b.newID("bill"),
			BillNumber:  "B-" + strconv.Itoa(len(b.bills)),
			OrderID:     o.ID,
			TotalAmount: total,
		})
	}
	api.POST("/bills", bill)
	api.POST("/bills/finalize", func(c *gin.Context) {
		b.mu.Lock()
		b.finalized++
		b.mu.Unlock()
		bill(c)
	})

	api.GET("/employees", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		c.JSON(http.StatusOK, b.employees)
	})
	api.POST("/employees", func(c *gin.Context) {
		var form models.EmployeeForm
		_ = c.ShouldBindJSON(&form)
		b.mu.Lock()
		defer b.mu.Unlock()
		e := models.Employee{ID: b.newID("emp"), Name: form.Name, Email: form.Email, Role: form.Role}
		b.employees = append(b.employees, e)
		c.JSON(http.StatusCreated, e)
	})
	api.DELETE("/employees/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Employee removed"})
	})
	api.GET("/reports/dashboard", func(c *gin.Context) {
		c.JSON(http.StatusOK, b.dashboard)
	})

	return r
}

func (b *fakeBackend) menuFromForm(c *gin.Context) (models.MenuItem, map[string]string) {
	fields := map[string]string{}
	for _, k := range []string{"name", "price", "category", "description", "isAvailable"} {
		fields[k] = c.PostForm(k)
	}
	if fh, err := c.FormFile("image"); err == nil {
		fields["image"] = fh.Filename
	}
	price, _ := strconv.ParseFloat(fields["price"], 64)
	available := fields["isAvailable"] == "true"
	return models.MenuItem{
		Name:        fields["name"],
		Price:       price,
		Category:    fields["category"],
		IsAvailable: &available,
	}, fields
}

// testEnv is the terminal API wired to a fake backend, as main wires it.
type testEnv struct {
	backend *fakeBackend
	store   *session.Store
	pos     *services.POSScreen
	kitchen *services.KitchenScreen
	carts   *services.DraftRegistry
	router  *gin.Engine
}

func setupEnv(t *testing.T, loggedIn bool) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitLogger("error")

	backend := newFakeBackend()
	srv := httptest.NewServer(backend.engine())
	t.Cleanup(srv.Close)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	store, err := session.New(db)
	require.NoError(t, err)
	if loggedIn {
		require.NoError(t, store.SetToken(validToken))
	}

	api := client.New(srv.URL, store)
	pos := services.NewPOSScreen(api, services.NewDraftManager(services.StaffGateway{API: api}, nil))
	kitchen := services.NewKitchenScreen(api)
	carts := services.NewDraftRegistry(services.PublicGateway{API: api}, store)

	r := router.SetupRouter(router.Deps{
		API:          api,
		Session:      store,
		POS:          pos,
		Kitchen:      kitchen,
		Carts:        carts,
		Hub:          kds.NewHub(),
		PublicOrigin: "https://pos.example.com",
		CORSOrigin:   "*",
		Currency:     "Rs.",
	})

	return &testEnv{backend: backend, store: store, pos: pos, kitchen: kitchen, carts: carts, router: r}
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp apiResponse
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v))
}

type jsonBody map[string]interface{}
