package menumap

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/agentstation/menumap/pkg/menu"
)

// flights coalesces concurrent operations on the same catalog key.
//
// The shared operation runs under a context that keeps the first caller's
// values but not its cancellation. It is canceled only once every caller
// has stopped waiting, so one impatient caller cannot fail the others.
type flights struct {
	mu     sync.Mutex
	group  singleflight.Group
	active map[string]*flight
}

type flight struct {
	run     func() (any, error)
	cancel  context.CancelFunc
	waiters int
}

func newFlights() *flights {
	return &flights{active: make(map[string]*flight)}
}

// do runs fn at most once for all callers that arrive while it is in
// flight. shared reports whether the result was produced for another
// caller as well.
func (fs *flights) do(ctx context.Context, key string, fn func(context.Context) ([]menu.Item, error)) (items []menu.Item, shared bool, err error) {
	fs.mu.Lock()
	f, ok := fs.active[key]
	if !ok {
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{cancel: cancel}
		f.run = func() (any, error) {
			defer fs.finish(key, f)
			return fn(fctx)
		}
		fs.active[key] = f
	}
	f.waiters++
	ch := fs.group.DoChan(key, f.run)
	fs.mu.Unlock()

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Shared, res.Err
		}
		items, _ := res.Val.([]menu.Item)
		return slices.Clone(items), res.Shared, nil
	case <-ctx.Done():
		fs.abandon(key, f)
		return nil, false, ctx.Err()
	}
}

// finish retires f once its operation has returned.
func (fs *flights) finish(key string, f *flight) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.active[key] == f {
		delete(fs.active, key)
		fs.group.Forget(key)
	}
	f.cancel()
}

// abandon drops one waiter and cancels the operation when none are left.
func (fs *flights) abandon(key string, f *flight) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	f.waiters--
	if f.waiters > 0 {
		return
	}
	f.cancel()
	if fs.active[key] == f {
		delete(fs.active, key)
		fs.group.Forget(key)
	}
}
