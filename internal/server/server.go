// Package server assembles the service from configuration: storage
// backend, domain services, REST handler, and the HTTP listener, with
// explicit construction instead of any container magic.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/txn2/mind-connect/pkg/actor"
	actorpg "github.com/txn2/mind-connect/pkg/actor/postgres"
	"github.com/txn2/mind-connect/pkg/api"
	"github.com/txn2/mind-connect/pkg/database"
	"github.com/txn2/mind-connect/pkg/database/migrate"
	"github.com/txn2/mind-connect/pkg/health"
	mchttp "github.com/txn2/mind-connect/pkg/http"
	"github.com/txn2/mind-connect/pkg/notification"
	notificationpg "github.com/txn2/mind-connect/pkg/notification/postgres"
	"github.com/txn2/mind-connect/pkg/platform"
	"github.com/txn2/mind-connect/pkg/session"
	sessionpg "github.com/txn2/mind-connect/pkg/session/postgres"
)

// Version is set at build time.
var Version = "dev"

// Server holds the assembled components.
type Server struct {
	cfg      *platform.Config
	lc       *platform.Lifecycle
	httpSrv  *http.Server
	checker  *health.Checker
	db       *sql.DB
	serveErr chan error
}

// stores groups the persistence implementations behind their interfaces.
type stores struct {
	sessions      session.Store
	notifications notification.Store
	users         actor.UserDirectory
	therapists    actor.TherapistDirectory
	tx            database.TxRunner
	db            *sql.DB
}

// New builds a Server from configuration. For the postgres driver this
// opens the pool and applies pending migrations before any store is
// constructed.
func New(cfg *platform.Config) (*Server, error) {
	st, err := buildStores(cfg)
	if err != nil {
		return nil, err
	}

	var ping func(context.Context) error
	if st.db != nil {
		ping = st.db.PingContext
	}
	checker := health.NewChecker(ping)

	sessionSvc := session.NewService(session.ServiceConfig{
		Store:         st.sessions,
		Notifications: st.notifications,
		Users:         st.users,
		Therapists:    st.therapists,
		Tx:            st.tx,
	})
	notificationSvc := notification.NewService(st.notifications)

	handler := api.NewHandler(api.HandlerConfig{
		Sessions:      sessionSvc,
		Notifications: notificationSvc,
		Users:         st.users,
		Therapists:    st.therapists,
		Health:        checker,
	})

	s := &Server{
		cfg:      cfg,
		lc:       platform.NewLifecycle(),
		httpSrv:  &http.Server{Addr: cfg.Server.Address, Handler: mchttp.RequestLogger(handler)},
		checker:  checker,
		db:       st.db,
		serveErr: make(chan error, 1),
	}
	s.registerLifecycle()
	return s, nil
}

func buildStores(cfg *platform.Config) (stores, error) {
	switch cfg.Storage.Driver {
	case platform.DriverMemory:
		return stores{
			sessions:      session.NewMemoryStore(),
			notifications: notification.NewMemoryStore(),
			users:         actor.NewMemoryUserDirectory(),
			therapists:    actor.NewMemoryTherapistDirectory(),
			tx:            database.NopTxRunner{},
		}, nil

	case platform.DriverPostgres:
		db, err := database.Open(cfg.Database.DSN())
		if err != nil {
			return stores{}, fmt.Errorf("connecting to postgres: %w", err)
		}
		if err := migrate.Run(db); err != nil {
			_ = db.Close()
			return stores{}, fmt.Errorf("migrating database: %w", err)
		}
		return stores{
			sessions:      sessionpg.New(db),
			notifications: notificationpg.New(db),
			users:         actorpg.NewUserDirectory(db),
			therapists:    actorpg.NewTherapistDirectory(db),
			tx:            database.NewTxManager(db),
			db:            db,
		}, nil

	default:
		return stores{}, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// registerLifecycle wires ordered start and stop: the database pool
// outlives the listener, so its close is registered first and runs last.
func (s *Server) registerLifecycle() {
	if s.db != nil {
		s.lc.OnStop(func(context.Context) error { return s.db.Close() })
	}

	s.lc.OnStart(func(context.Context) error {
		ln, err := net.Listen("tcp", s.httpSrv.Addr)
		if err != nil {
			return fmt.Errorf("listening on %s: %w", s.httpSrv.Addr, err)
		}
		go func() { s.serveErr <- s.httpSrv.Serve(ln) }()
		s.checker.SetReady()
		slog.Info("http server listening", "address", ln.Addr().String(), "version", Version)
		return nil
	})
	s.lc.OnStop(func(ctx context.Context) error {
		s.checker.SetDraining()
		return s.httpSrv.Shutdown(ctx)
	})
}

// Run starts the server and blocks until ctx is cancelled or the
// listener fails, then shuts down within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	if err := s.lc.Start(ctx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
	case err := <-s.serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			stopCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
			defer cancel()
			_ = s.lc.Stop(stopCtx)
			return fmt.Errorf("http server failed: %w", err)
		}
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := s.lc.Stop(stopCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
