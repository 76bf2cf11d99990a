package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/client"
	"github.com/yeremiapane/restaurant-pos/config"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/router"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/session"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type app struct {
	hub         *kds.KDSHub
	posLoop     *services.RefreshScheduler[services.POSState]
	kitchenLoop *services.RefreshScheduler[[]services.KitchenTicket]
	cartSweep   *services.RefreshScheduler[int]
	engine      *gin.Engine
}

// newApp wires the backend client, screens, refresh loops, the cart sweep
// and router around one session store.
func newApp(cfg *config.Config, store *session.Store) *app {
	api := client.New(cfg.BackendURL, store, client.WithTimeout(cfg.BackendTimeout))
	hub := kds.NewHub()

	pos := services.NewPOSScreen(api, services.NewDraftManager(services.StaffGateway{API: api}, nil))
	kitchen := services.NewKitchenScreen(api)
	carts := services.NewDraftRegistry(services.PublicGateway{API: api}, store)

	posLoop := services.NewRefreshScheduler("POS", cfg.POSRefreshInterval,
		whenLoggedIn(store, pos.Fetch),
		func(state services.POSState) {
			pos.Apply(state)
			hub.BroadcastPOSRefresh(state)
		})
	kitchenLoop := services.NewRefreshScheduler("Kitchen", cfg.KitchenRefreshInterval,
		whenLoggedIn(store, kitchen.Fetch),
		func(tickets []services.KitchenTicket) {
			kitchen.Apply(tickets)
			hub.BroadcastKitchenRefresh(tickets)
		})

	cartSweep := services.NewRefreshScheduler("Cart sweep", cfg.CartSweepInterval,
		func(context.Context) (int, error) {
			return carts.Sweep(cfg.CartIdleTTL), nil
		},
		func(closed int) {
			if closed > 0 {
				utils.InfoLogger.Printf("Closed %d idle customer carts (%d open)", closed, carts.Len())
			}
		})

	engine := router.SetupRouter(router.Deps{
		API:            api,
		Session:        store,
		POS:            pos,
		Kitchen:        kitchen,
		Carts:          carts,
		Hub:            hub,
		POSRefresh:     posLoop,
		KitchenRefresh: kitchenLoop,
		PublicOrigin:   cfg.PublicOrigin,
		CORSOrigin:     cfg.CORSOrigin,
		Currency:       cfg.CurrencySymbol,
		RateLimitRPS:   cfg.RateLimitRPS,
	})

	return &app{hub: hub, posLoop: posLoop, kitchenLoop: kitchenLoop, cartSweep: cartSweep, engine: engine}
}

// whenLoggedIn skips polling while the terminal has no session.
func whenLoggedIn[T any](store *session.Store, fetch func(context.Context) (T, error)) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		if !store.LoggedIn() {
			var zero T
			return zero, services.ErrRefreshSkipped
		}
		return fetch(ctx)
	}
}

func (a *app) start(ctx context.Context) {
	a.posLoop.Start(ctx)
	a.kitchenLoop.Start(ctx)
	a.cartSweep.Start(ctx)
}

func (a *app) stop() {
	a.posLoop.Stop()
	a.kitchenLoop.Stop()
	a.cartSweep.Stop()
	a.hub.CloseAll()
}

func main() {
	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := session.Open(cfg.SessionDriver, cfg.SessionDSN)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to open session store: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := newApp(cfg, store)
	a.start(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s (backend %s)", cfg.Port, cfg.BackendURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Println("Shutting down...")

	a.stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Printf("Server shutdown failed: %v", err)
	}
	utils.InfoLogger.Println("Server stopped")
}
