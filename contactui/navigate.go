package contactui

import "sync"

// Navigator moves the user to another route.
type Navigator interface {
	Navigate(path string)
}

// Redirect records navigation requests so a request/response host can turn
// them into a redirect.
type Redirect struct {
	mu     sync.Mutex
	target string
	count  int
}

func (r *Redirect) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target = path
	r.count++
}

// Target returns the last requested path and whether any navigation happened.
func (r *Redirect) Target() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target, r.count > 0
}

func (r *Redirect) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
