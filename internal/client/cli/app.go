package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/client/api"
	"github.com/dmitrijs2005/newsdigest/internal/client/config"
	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/dmitrijs2005/newsdigest/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/newsdigest/internal/client/services"
	"github.com/dmitrijs2005/newsdigest/internal/client/store"
	"github.com/dmitrijs2005/newsdigest/internal/client/view"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
	"golang.org/x/sync/errgroup"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// now is a test seam for the reading counters.
var now = time.Now

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	gw      api.Client
	local   *services.LocalStore
	session *services.SessionController
	prefs   *services.Reconciler
	orch    *view.Orchestrator
	feed    *view.Feed
	shared  *view.SharedArticleView

	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	mode Mode
}

// NewApp opens the local database and builds the client core around an
// HTTP gateway for cfg.ServerURL.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := store.Open(ctx, cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	repo := metadata.NewSQLiteRepository(db)

	base, err := api.ParseBaseURL(cfg.ServerURL)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	cookies, err := api.NewCookieStore(ctx, base, repo, log.With("component", "cookies"))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error restoring session cookies: %w", err)
	}
	gw, err := api.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout, cookies, log.With("component", "api"))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(cfg, gw, repo, log, os.Stdin, os.Stdout)
	a.db = db
	return a, nil
}

func newApp(cfg *config.Config, gw api.Client, repo metadata.Repository, log logging.Logger, in io.Reader, out io.Writer) *App {
	local := services.NewLocalStore(repo, log.With("component", "store"))
	prefs := services.NewReconciler(local, gw, cfg.LoginPolicy, log.With("component", "preferences"))
	return &App{
		config:  cfg,
		log:     log,
		gw:      gw,
		local:   local,
		session: services.NewSessionController(gw, log.With("component", "session")),
		prefs:   prefs,
		orch:    view.NewOrchestrator(prefs, view.ParseRoute(cfg.InitialRoute), log.With("component", "view")),
		feed:    view.NewFeed(gw, log.With("component", "feed")),
		shared:  view.NewSharedArticleView(gw, log.With("component", "shared")),
		reader:  bufio.NewReader(in),
		out:     out,
		mode:    ModeOnline,
	}
}

// Start loads local preferences and resolves the session concurrently,
// then hands both to the orchestrator. It returns once the first screen
// is known.
func (a *App) Start(ctx context.Context) error {
	var (
		prefs   models.Preferences
		stored  bool
		session models.Session
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		prefs, stored = a.prefs.Initialize(gctx)
		return nil
	})
	g.Go(func() error {
		session = a.session.Resolve(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if _, err := a.orch.Dispatch(ctx, view.AppStarted{Preferences: prefs, Session: session, Stored: stored}); err != nil {
		return err
	}

	a.session.Subscribe(func(s models.Session) {
		if s.State == models.SessionAnonymous {
			if _, err := a.orch.Dispatch(context.Background(), view.LoggedOut{}); err != nil {
				a.log.Error(context.Background(), "could not apply logout", "error", err)
			}
		}
	})
	return nil
}

// Run starts the client and blocks in the REPL until the user quits or
// input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to NewsDigest (type 'help' for commands)")
	if err := a.Start(ctx); err != nil {
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.PingInterval)

	a.afterTransition(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// Close waits for background preference pushes and releases the database.
func (a *App) Close() {
	a.feed.Stop()
	a.prefs.Wait()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Error(context.Background(), "closing database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Current().IsAuthenticated()
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed {
		a.log.Warn(context.Background(), "connectivity changed", "mode", mode)
	}
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// StartOnlineStatusWatcher pings the backend every interval and records
// whether it is reachable. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
			err := a.gw.Ping(pctx)
			cancel()
			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}
		case <-ctx.Done():
			return
		}
	}
}

// getStatus is the prompt decoration: who is signed in, where they are and
// anything worth flagging.
func (a *App) getStatus() string {
	st := a.orch.State()
	s := ""
	switch {
	case st.Route.Kind == view.RouteShared:
		s = "shared " + st.Route.ShareID
	case st.Session.IsAuthenticated():
		s = st.Session.Identity.Email + " " + st.Screen.Kind.String()
		if st.Screen.Kind == view.ScreenDashboard {
			s += ":" + st.ActiveCategory
		}
	default:
		s = "signed out"
	}
	if a.currentMode() == ModeOffline {
		s += " offline"
	}
	if status, _ := a.prefs.Status(); status == services.SyncFailed {
		s += " sync-failed"
	}
	return fmt.Sprintf("(%s)", s)
}
