package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/newsdigest/internal/client/api"
	"github.com/dmitrijs2005/newsdigest/internal/client/config"
	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
)

// SyncStatus is the state of the remote mirror for the latest commit.
type SyncStatus string

const (
	SyncIdle    SyncStatus = "idle"
	SyncPending SyncStatus = "pending"
	SyncFailed  SyncStatus = "failed"
)

var ErrInvalidPreferences = errors.New("invalid preferences")

// Reconciler is the single writer of preferences. Local writes are
// synchronous and authoritative; the server copy is a best-effort mirror.
type Reconciler struct {
	store  *LocalStore
	gw     api.Client
	policy config.LoginPolicy
	log    logging.Logger

	mu      sync.Mutex
	current models.Preferences
	stored  bool
	status  SyncStatus
	lastErr error
	gen     uint64

	wg sync.WaitGroup
}

func NewReconciler(store *LocalStore, gw api.Client, policy config.LoginPolicy, log logging.Logger) *Reconciler {
	if policy == "" {
		policy = config.PolicyKeepLocal
	}
	return &Reconciler{
		store:   store,
		gw:      gw,
		policy:  policy,
		log:     log,
		current: models.DefaultPreferences(),
		status:  SyncIdle,
	}
}

// Initialize loads the local record, never touching the network. The bool
// reports whether this device had preferences stored.
func (r *Reconciler) Initialize(ctx context.Context) (models.Preferences, bool) {
	p, ok := r.store.Snapshot(ctx)

	r.mu.Lock()
	r.current = p
	r.stored = ok
	r.mu.Unlock()

	return p.Clone(), ok
}

// Current returns the preferences in effect.
func (r *Reconciler) Current() models.Preferences {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current.Clone()
}

// Stored reports whether preferences have been saved on this device.
func (r *Reconciler) Stored() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stored
}

// Commit validates prefs, writes them locally and, for an authenticated
// session, starts a background push. Only validation and local write
// failures are returned; the push outcome is visible through Status.
func (r *Reconciler) Commit(ctx context.Context, prefs models.Preferences, session models.Session) (models.Preferences, error) {
	prefs = prefs.Normalize()
	if err := prefs.Validate(); err != nil {
		return models.Preferences{}, fmt.Errorf("%w: %w", ErrInvalidPreferences, err)
	}

	if err := r.saveLocal(ctx, prefs); err != nil {
		return models.Preferences{}, err
	}

	if session.IsAuthenticated() {
		r.push(ctx, prefs)
	} else {
		r.settle(r.nextGen(), nil)
	}
	return prefs.Clone(), nil
}

func (r *Reconciler) saveLocal(ctx context.Context, prefs models.Preferences) error {
	if err := r.store.Save(ctx, prefs); err != nil {
		return fmt.Errorf("save preferences locally: %w", err)
	}
	r.mu.Lock()
	r.current = prefs.Clone()
	r.stored = true
	r.mu.Unlock()
	return nil
}

func (r *Reconciler) nextGen() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	return r.gen
}

// settle records the outcome of generation gen unless a newer commit has
// started since.
func (r *Reconciler) settle(gen uint64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return
	}
	r.lastErr = err
	if err != nil {
		r.status = SyncFailed
	} else {
		r.status = SyncIdle
	}
}

// push mirrors prefs to the server in the background. The push outlives
// the caller's context cancellation but keeps its values.
func (r *Reconciler) push(ctx context.Context, prefs models.Preferences) {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	r.status = SyncPending
	r.lastErr = nil
	r.mu.Unlock()

	bg := context.WithoutCancel(ctx)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		err := r.gw.SavePreferences(bg, prefs)
		if err != nil {
			r.log.Warn(bg, "preference sync failed", "error", err)
		} else {
			r.log.Debug(bg, "preferences synced")
		}
		r.settle(gen, err)
	}()
}

// Status reports the sync state of the latest commit and, when it failed,
// the error.
func (r *Reconciler) Status() (SyncStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status, r.lastErr
}

// Wait blocks until every background push has finished.
func (r *Reconciler) Wait() {
	r.wg.Wait()
}

// OnLogin applies the login policy for a freshly authenticated session and
// returns the preferences now in effect. A remote failure leaves the local
// record in charge; it is logged, never returned.
func (r *Reconciler) OnLogin(ctx context.Context, session models.Session) models.Preferences {
	if !session.IsAuthenticated() || r.policy == config.PolicyKeepLocal {
		return r.Current()
	}

	remote, err := r.gw.GetPreferences(ctx)
	switch {
	case errors.Is(err, api.ErrNotFound):
		r.log.Info(ctx, "no preferences on the server")
		return r.Current()
	case err != nil:
		r.log.Warn(ctx, "could not fetch remote preferences", "error", err)
		return r.Current()
	}

	rp := remote.Normalize()
	if err := rp.Validate(); err != nil {
		r.log.Warn(ctx, "remote preferences ignored", "error", err)
		return r.Current()
	}

	next := rp
	if r.policy == config.PolicyMerge {
		r.mu.Lock()
		local, stored := r.current.Clone(), r.stored
		r.mu.Unlock()
		next = mergePreferences(local, stored, rp)
	}

	if err := r.saveLocal(ctx, next); err != nil {
		r.log.Error(ctx, "could not store reconciled preferences", "error", err)
		return r.Current()
	}
	if !next.Equal(rp) {
		r.push(ctx, next)
	}
	r.log.Info(ctx, "preferences reconciled", "policy", r.policy, "categories", next.Categories)
	return next.Clone()
}

// mergePreferences keeps a device's own choices and adds the categories it
// is missing from the server copy. A device that never saved preferences,
// or still holds the defaults, adopts the server copy.
func mergePreferences(local models.Preferences, stored bool, remote models.Preferences) models.Preferences {
	if !stored || local.IsDefault() {
		return remote.Clone()
	}
	out := local.Clone()
	for _, c := range remote.Categories {
		if !out.HasCategory(c) {
			out.Categories = append(out.Categories, c)
		}
	}
	return out
}
