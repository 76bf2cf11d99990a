package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/client"
	"github.com/yeremiapane/restaurant-pos/controllers"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/middlewares"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/session"
)

// Deps is everything the terminal API is wired to.
type Deps struct {
	API     *client.Client
	Session *session.Store
	POS     *services.POSScreen
	Kitchen *services.KitchenScreen
	Carts   *services.DraftRegistry
	Hub     *kds.KDSHub

	POSRefresh     controllers.Refresher
	KitchenRefresh controllers.Refresher

	PublicOrigin string
	CORSOrigin   string
	Currency     string
	RateLimitRPS float64
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders(5*time.Minute, "/tables/:table_id/qr", "/shop/qr"))
	r.Use(middlewares.CORSMiddlewares(d.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(d.API, d.Session)
	posCtrl := &controllers.POSController{
		POS:            d.POS,
		API:            d.API,
		Hub:            d.Hub,
		Currency:       d.Currency,
		POSRefresh:     d.POSRefresh,
		KitchenRefresh: d.KitchenRefresh,
	}
	kitchenCtrl := &controllers.KitchenController{Kitchen: d.Kitchen, Hub: d.Hub, POSRefresh: d.POSRefresh}
	customerCtrl := &controllers.CustomerController{
		API:            d.API,
		Carts:          d.Carts,
		Session:        d.Session,
		Hub:            d.Hub,
		Currency:       d.Currency,
		POSRefresh:     d.POSRefresh,
		KitchenRefresh: d.KitchenRefresh,
	}
	menuCtrl := &controllers.MenuController{API: d.API, POSRefresh: d.POSRefresh}
	tableCtrl := &controllers.TableController{API: d.API, PublicOrigin: d.PublicOrigin, POSRefresh: d.POSRefresh}
	employeeCtrl := &controllers.EmployeeController{API: d.API}
	reportCtrl := &controllers.ReportController{API: d.API, Currency: d.Currency}

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/signup", userCtrl.Signup)
		public.POST("/login", userCtrl.Login)
	}

	api := r.Group("/")
	if d.RateLimitRPS > 0 {
		api.Use(middlewares.NewRateLimiter(d.RateLimitRPS, int(d.RateLimitRPS*2)).RateLimit())
	}

	// -- CUSTOMER (QR code, no login) --
	customer := api.Group("/customer")
	{
		customer.GET("/menu", customerCtrl.GetMenu)
		customer.POST("/carts", customerCtrl.CreateCart)
		customer.GET("/carts/:cart_id", customerCtrl.GetCart)
		customer.DELETE("/carts/:cart_id", customerCtrl.CloseCart)
		customer.POST("/carts/:cart_id/items", customerCtrl.AddItem)
		customer.PATCH("/carts/:cart_id/items/:menu_item_id", customerCtrl.ChangeQuantity)
		customer.POST("/carts/:cart_id/submit", customerCtrl.Submit)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := api.Group("/")
	auth.Use(middlewares.SessionRequired(d.Session))

	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/profile", userCtrl.Profile)

	// POS
	auth.GET("/pos/state", posCtrl.GetState)
	auth.POST("/pos/refresh", posCtrl.Refresh)
	auth.POST("/pos/tables/:table_id/select", posCtrl.SelectTable)
	auth.POST("/pos/orders/:order_id/select", posCtrl.SelectOrder)
	auth.POST("/pos/takeaway", posCtrl.NewTakeaway)
	auth.POST("/pos/delivery", posCtrl.NewDelivery)
	auth.GET("/pos/draft", posCtrl.GetDraft)
	auth.DELETE("/pos/draft", posCtrl.ClearDraft)
	auth.POST("/pos/draft/items", posCtrl.AddItem)
	auth.PATCH("/pos/draft/items/:menu_item_id", posCtrl.ChangeQuantity)
	auth.POST("/pos/draft/submit", posCtrl.Submit)
	auth.POST("/pos/bills", posCtrl.Bill)

	// KDS (Chef)
	auth.GET("/kitchen/orders", kitchenCtrl.GetOrders)
	auth.POST("/kitchen/orders/:order_id/items/:item_id/advance", kitchenCtrl.AdvanceItem)

	// MENU
	auth.GET("/menu", menuCtrl.GetMenu)
	auth.POST("/menu", menuCtrl.CreateMenuItem)
	auth.PUT("/menu/:menu_id", menuCtrl.UpdateMenuItem)
	auth.PATCH("/menu/:menu_id/availability", menuCtrl.SetAvailability)
	auth.DELETE("/menu/:menu_id", menuCtrl.DeleteMenuItem)

	// TABLE
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.POST("/tables", tableCtrl.CreateTable)
	auth.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
	auth.GET("/tables/:table_id/qr", tableCtrl.TableQR)
	auth.GET("/shop/qr", tableCtrl.ShopQR)

	// EMPLOYEES
	auth.GET("/employees", employeeCtrl.GetEmployees)
	auth.POST("/employees", employeeCtrl.CreateEmployee)
	auth.DELETE("/employees/:id", employeeCtrl.DeleteEmployee)

	// REPORTS
	auth.GET("/reports/dashboard", reportCtrl.Dashboard)
	auth.GET("/reports/sales-trend.png", reportCtrl.SalesTrendChart)

	// WebSocket push per screen
	r.GET("/ws/:screen", middlewares.SessionRequired(d.Session), controllers.ScreenSocket(d.Hub))

	return r
}
