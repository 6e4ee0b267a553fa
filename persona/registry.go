package persona

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var (
	// ErrRegistry is matched by every registry failure.
	ErrRegistry = errors.New("participant registry")
	// ErrInvalidProfile is returned when a profile fails validation.
	ErrInvalidProfile = errors.New("invalid participant profile")
)

// DuplicateNameError is returned by Register when the name is taken.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("participant %q is already registered", e.Name)
}

func (e *DuplicateNameError) Unwrap() error { return ErrRegistry }

// NotFoundError is returned by Find for an unknown name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("participant %q not found", e.Name)
}

func (e *NotFoundError) Unwrap() error { return ErrRegistry }

var validate = validator.New()

// Registry holds participants in registration order.
type Registry struct {
	mu       sync.RWMutex
	personas []*Persona
	byName   map[string]*Persona
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Persona),
	}
}

// Register adds p. The registry is left untouched when p is invalid or its
// name is already taken.
func (r *Registry) Register(p *Persona) error {
	if p == nil || p.IsPseudo() {
		return fmt.Errorf("%w: nil or pseudo participant", ErrInvalidProfile)
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[p.Name]; exists {
		return &DuplicateNameError{Name: p.Name}
	}
	r.personas = append(r.personas, p)
	r.byName[p.Name] = p
	return nil
}

func (r *Registry) Find(name string) (*Persona, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.byName[name]; ok {
		return p, nil
	}
	return nil, &NotFoundError{Name: name}
}

// All returns the participants in registration order.
func (r *Registry) All() []*Persona {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Persona, len(r.personas))
	copy(out, r.personas)
	return out
}

func (r *Registry) Names() []string {
	return lo.Map(r.All(), func(p *Persona, _ int) string {
		return p.Name
	})
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.personas)
}
