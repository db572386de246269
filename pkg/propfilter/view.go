package propfilter

import (
	"sync"
	"time"

	"github.com/gnana997/rndocs/pkg/catalog"
	"github.com/gnana997/rndocs/pkg/debounce"
)

// View is the prop panel of one document. The search text is applied only
// after it has been stable for the debounce delay; Result always reflects
// the last committed query, never a keystroke in flight.
//
// Design:
//   - SetQuery stores the raw text and triggers the debouncer
//   - The debouncer commits the surviving text; older text never commits
//   - Selection changes bypass the debouncer and show up in the next Result
//
// Thread Safety:
//   - All methods are safe for concurrent use
//   - mu guards raw, committed and commits; the Selection has its own lock
//   - The onCommit callback runs on the timer goroutine (or the Flush
//     caller's) without mu held; it must not call Flush
type View struct {
	doc       *catalog.Document
	selection *Selection
	cache     *Cache
	onCommit  func(query string)
	debouncer *debounce.Debouncer[string]

	mu        sync.RWMutex
	raw       string
	committed string
	commits   int
}

// ViewOption configures a View.
type ViewOption func(*viewOptions)

type viewOptions struct {
	delay     time.Duration
	scheduler debounce.Scheduler
	cache     *Cache
	onCommit  func(string)
}

// WithDelay sets the debounce delay. Defaults to debounce.DefaultDelay.
func WithDelay(d time.Duration) ViewOption {
	return func(o *viewOptions) { o.delay = d }
}

// WithScheduler replaces the debounce timer source.
func WithScheduler(s debounce.Scheduler) ViewOption {
	return func(o *viewOptions) { o.scheduler = s }
}

// WithCache memoizes results in c.
func WithCache(c *Cache) ViewOption {
	return func(o *viewOptions) { o.cache = c }
}

// WithOnCommit registers a callback that runs after each committed query.
func WithOnCommit(f func(query string)) ViewOption {
	return func(o *viewOptions) { o.onCommit = f }
}

// NewView creates a View over doc's props with an empty query and selection.
//
// Parameters:
//   - doc: the document whose props are filtered; nil yields an empty Result
//   - opts: WithDelay, WithScheduler, WithCache, WithOnCommit
func NewView(doc *catalog.Document, opts ...ViewOption) *View {
	o := viewOptions{delay: debounce.DefaultDelay}
	for _, opt := range opts {
		opt(&o)
	}

	v := &View{
		doc:       doc,
		selection: NewSelection(),
		cache:     o.cache,
		onCommit:  o.onCommit,
	}

	var dopts []debounce.Option
	if o.scheduler != nil {
		dopts = append(dopts, debounce.WithScheduler(o.scheduler))
	}
	v.debouncer = debounce.New(o.delay, v.commit, dopts...)
	return v
}

// Document returns the document the view filters.
func (v *View) Document() *catalog.Document {
	return v.doc
}

// SetQuery records the search text and schedules it for commit. It never
// blocks on filtering.
func (v *View) SetQuery(raw string) {
	v.mu.Lock()
	v.raw = raw
	v.mu.Unlock()
	v.debouncer.Trigger(raw)
}

func (v *View) commit(query string) {
	v.mu.Lock()
	v.committed = query
	v.commits++
	v.mu.Unlock()

	if v.onCommit != nil {
		v.onCommit(query)
	}
}

// Flush commits a pending query immediately.
func (v *View) Flush() bool {
	return v.debouncer.Flush()
}

// Query returns the text as typed.
func (v *View) Query() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.raw
}

// Committed returns the query that Result filters by.
func (v *View) Committed() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.committed
}

// Commits returns how many queries have been committed.
func (v *View) Commits() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.commits
}

// Pending reports whether typed text is waiting to be committed.
func (v *View) Pending() bool {
	return v.debouncer.Pending()
}

// Selection returns the view's prop selection.
func (v *View) Selection() *Selection {
	return v.selection
}

// Toggle flips name in the selection. Selection changes apply immediately.
func (v *View) Toggle(name string) bool {
	return v.selection.Toggle(name)
}

// Remove deselects name.
func (v *View) Remove(name string) {
	v.selection.Remove(name)
}

// Result returns the visible props for the committed query and the current
// selection.
func (v *View) Result() []catalog.Prop {
	if v.doc == nil {
		return nil
	}
	return v.cache.Filter(v.doc.ID, v.doc.Props, v.Committed(), v.selection)
}

// Close cancels any pending commit. A commit already running finishes, but
// no later one is applied. Safe to call more than once.
func (v *View) Close() {
	v.debouncer.Stop()
}
