// Package httpapi exposes the NewsDigest backend over HTTP/JSON.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/logging"
	"github.com/dmitrijs2005/newsdigest/internal/server/config"
	"github.com/dmitrijs2005/newsdigest/internal/server/services"
	"golang.org/x/sync/errgroup"
)

// Server wires the services to HTTP routes.
type Server struct {
	cfg    *config.Config
	log    logging.Logger
	users  *services.UserService
	news   *services.NewsService
	shares *services.ShareService
	prefs  *services.PreferenceService

	authLimiter *ipLimiter
	now         func() time.Time
}

func NewServer(cfg *config.Config, log logging.Logger, users *services.UserService, news *services.NewsService,
	shares *services.ShareService, prefs *services.PreferenceService) *Server {
	return &Server{
		cfg:         cfg,
		log:         log,
		users:       users,
		news:        news,
		shares:      shares,
		prefs:       prefs,
		authLimiter: newIPLimiter(cfg.AuthRateLimit, time.Minute),
		now:         time.Now,
	}
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info(ctx, "http server listening", "addr", l.Addr().String())
		if err := srv.Serve(l); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log.Info(ctx, "shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
