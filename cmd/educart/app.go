package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/fracki1010/edu-cart-app/internal/api"
	"github.com/fracki1010/edu-cart-app/internal/cart"
	"github.com/fracki1010/edu-cart-app/internal/catalog"
	"github.com/fracki1010/edu-cart-app/internal/config"
	"github.com/fracki1010/edu-cart-app/internal/localstore"
	"github.com/fracki1010/edu-cart-app/internal/order"
	"github.com/fracki1010/edu-cart-app/internal/session"
)

// appContext wires everything a command needs: local storage, the session
// store, the API client and the services on top.
type appContext struct {
	cfg      *config.Config
	kv       *localstore.Store
	sessions *session.Store
	client   *api.Client
	carts    *cart.Service
	catalog  *catalog.Service
	orders   *order.Service
}

func newAppContext(configPath string, log *zap.Logger) (*appContext, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	kv, err := localstore.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}

	sessions, err := session.NewStore(kv, log)
	if err != nil {
		kv.Close()
		return nil, err
	}
	sessions.OnClear(func() {
		fmt.Println("Session expired. Please run 'educart login' again.")
	})

	client := api.NewClient(api.Config{
		BaseURL:        cfg.APIURL,
		Timeout:        cfg.RequestTimeout,
		Sessions:       sessions,
		OnUnauthorized: sessions.Clear,
		Logger:         log,
	})

	carts := cart.NewService(sessions, cart.NewLocalStore(kv), cart.NewRemoteStore(client), log)

	return &appContext{
		cfg:      cfg,
		kv:       kv,
		sessions: sessions,
		client:   client,
		carts:    carts,
		catalog:  catalog.NewService(client, log),
		orders:   order.NewService(client, carts, log),
	}, nil
}

func (a *appContext) Close() {
	if a.kv != nil {
		a.kv.Close()
	}
}
