// Package locker provides an HTTP middleware which allows an HTTPHandler to be locked, returning 423 (locked)
package locker

import (
	"encoding/json"
	"go/types"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi"
	"github.com/hwlab/pigcs2/generichttp"
)

// ManipulableLock is a lock which can be manipulated over HTTP and used
// as a middleware to bounce requests while locked
type ManipulableLock interface {
	// Check is the middleware, passing requests through while unlocked
	Check(http.Handler) http.Handler

	// HTTPGet returns the lock state over HTTP
	HTTPGet(w http.ResponseWriter, r *http.Request)

	// HTTPSet sets the lock state over HTTP
	HTTPSet(w http.ResponseWriter, r *http.Request)
}

// Inject adds lock routes to a generichttp.HTTPer which are used to
// manipulate the lock.  Axis-aware locks also get per-axis routes.
func Inject(other generichttp.HTTPer, l ManipulableLock) {
	rt := other.RT()
	rt[generichttp.MethodPath{Method: http.MethodGet, Path: "/lock"}] = l.HTTPGet
	rt[generichttp.MethodPath{Method: http.MethodPost, Path: "/lock"}] = l.HTTPSet
	if al, ok := l.(*AxisLocker); ok {
		rt[generichttp.MethodPath{Method: http.MethodGet, Path: "/axis/{axis}/lock"}] = al.HTTPGetAxis
		rt[generichttp.MethodPath{Method: http.MethodPost, Path: "/axis/{axis}/lock"}] = al.HTTPSetAxis
	}
}

// Locker is a type which behaves like a sync.Mutex without the blocking,
// and holds a list of routes to not protect
type Locker struct {
	mu       sync.Mutex
	isLocked bool

	// DoNotProtect is a list of paths not to apply the lock to
	DoNotProtect []string
}

// New returns a new Locker with DoNotProtect prepopulated with "lock"
func New() *Locker {
	return &Locker{DoNotProtect: []string{"lock"}}
}

// Lock the locker
func (l *Locker) Lock() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.isLocked = true
}

// Unlock the locker
func (l *Locker) Unlock() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.isLocked = false
}

// Locked returns true if the locker is locked
func (l *Locker) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.isLocked
}

// Check is an HTTP middleware that returns http.StatusLocked if Locked() is true, otherwise passes down the line
func (l *Locker) Check(next http.Handler) http.Handler {
	// return a handlerfunc wrapping a handler, middleware/generator pattern
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.Locked() {
			// check if the path is protected
			protected := true
			url := r.URL.Path
			for _, str := range l.DoNotProtect {
				if strings.Contains(url, str) {
					protected = false
				}
			}
			// if it is, bounce the request - locked
			if protected {
				w.WriteHeader(http.StatusLocked)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// HTTPSet calls Lock or Unlock based on json:bool on the request body
func (l *Locker) HTTPSet(w http.ResponseWriter, r *http.Request) {
	b := generichttp.BoolT{}
	err := json.NewDecoder(r.Body).Decode(&b)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if b.Bool {
		l.Lock()
	} else {
		l.Unlock()
	}
	w.WriteHeader(http.StatusOK)
}

// HTTPGet returns Locked() over HTTP as JSON
func (l *Locker) HTTPGet(w http.ResponseWriter, r *http.Request) {
	b := l.Locked()
	hp := generichttp.HumanPayload{T: types.Bool, Bool: b}
	hp.EncodeAndRespond(w, r)
	return
}

// AxisLocker is a Locker variant for multi-axis devices: the whole node
// can be locked, or individual axes, without blocking motion of the others
type AxisLocker struct {
	mu       sync.Mutex
	isLocked bool
	axes     map[string]bool

	// DoNotProtect is a list of paths not to apply the lock to
	DoNotProtect []string
}

// NewAL returns a new AxisLocker with DoNotProtect prepopulated with "lock"
func NewAL() *AxisLocker {
	return &AxisLocker{axes: map[string]bool{}, DoNotProtect: []string{"lock"}}
}

// Lock the whole node
func (a *AxisLocker) Lock() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.isLocked = true
}

// Unlock the whole node
func (a *AxisLocker) Unlock() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.isLocked = false
}

// Locked returns true if the whole node is locked
func (a *AxisLocker) Locked() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.isLocked
}

// LockAxis sets the lock state of one axis
func (a *AxisLocker) LockAxis(axis string, locked bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.axes[axis] = locked
}

// AxisLocked returns true if the named axis, or the whole node, is locked
func (a *AxisLocker) AxisLocked(axis string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.isLocked || a.axes[axis]
}

// axisOf plucks the axis name out of a path like /axis/X/pos, empty string
// if the path is not axis-scoped
func axisOf(path string) string {
	pieces := strings.Split(strings.Trim(path, "/"), "/")
	for i, piece := range pieces {
		if piece == "axis" && i+1 < len(pieces) {
			return pieces[i+1]
		}
	}
	return ""
}

// Check is an HTTP middleware that returns http.StatusLocked if the node
// or the request's axis is locked, otherwise passes down the line
func (a *AxisLocker) Check(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		url := r.URL.Path
		protected := true
		for _, str := range a.DoNotProtect {
			if strings.Contains(url, str) {
				protected = false
			}
		}
		if protected && a.AxisLocked(axisOf(url)) {
			w.WriteHeader(http.StatusLocked)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HTTPSet calls Lock or Unlock based on json:bool on the request body
func (a *AxisLocker) HTTPSet(w http.ResponseWriter, r *http.Request) {
	b := generichttp.BoolT{}
	err := json.NewDecoder(r.Body).Decode(&b)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if b.Bool {
		a.Lock()
	} else {
		a.Unlock()
	}
	w.WriteHeader(http.StatusOK)
}

// HTTPGet returns Locked() over HTTP as JSON
func (a *AxisLocker) HTTPGet(w http.ResponseWriter, r *http.Request) {
	b := a.Locked()
	hp := generichttp.HumanPayload{T: types.Bool, Bool: b}
	hp.EncodeAndRespond(w, r)
	return
}

// HTTPSetAxis sets the lock state of one axis based on json:bool on the request body
func (a *AxisLocker) HTTPSetAxis(w http.ResponseWriter, r *http.Request) {
	axis := chi.URLParam(r, "axis")
	b := generichttp.BoolT{}
	err := json.NewDecoder(r.Body).Decode(&b)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	a.LockAxis(axis, b.Bool)
	w.WriteHeader(http.StatusOK)
}

// HTTPGetAxis returns AxisLocked() for one axis over HTTP as JSON
func (a *AxisLocker) HTTPGetAxis(w http.ResponseWriter, r *http.Request) {
	axis := chi.URLParam(r, "axis")
	b := a.AxisLocked(axis)
	hp := generichttp.HumanPayload{T: types.Bool, Bool: b}
	hp.EncodeAndRespond(w, r)
	return
}
