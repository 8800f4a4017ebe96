package form

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Registry tracks form instances by ID so concurrent requests for the same
// instance cannot dispatch twice.
type Registry struct {
	newForm func() *Form

	mu    sync.Mutex
	forms map[string]*entry
}

// entry is a registered form and the number of requests holding it.
type entry struct {
	form    *Form
	holders int
}

// NewRegistry creates a registry that builds instances with newForm.
func NewRegistry(newForm func() *Form) *Registry {
	return &Registry{newForm: newForm, forms: make(map[string]*entry)}
}

// Submit fills the instance identified by id and submits it. An empty id
// starts a fresh instance. The ID used is returned with the result.
func (r *Registry) Submit(ctx context.Context, id string, fields map[string]any) (string, Result, error) {
	if id == "" {
		id = uuid.NewString()
	}
	f := r.acquire(id)
	defer r.release(id)

	res, err := f.SubmitFields(ctx, fields)
	return id, res, err
}

// Len reports how many instances are tracked.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

func (r *Registry) acquire(id string) *Form {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.forms[id]
	if !ok {
		e = &entry{form: r.newForm()}
		r.forms[id] = e
	}
	e.holders++
	return e.form
}

// release drops an instance once no request holds it and nothing is pending.
func (r *Registry) release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.forms[id]
	if !ok {
		return
	}
	e.holders--
	if e.holders <= 0 && !e.form.Submitting() {
		delete(r.forms, id)
	}
}
