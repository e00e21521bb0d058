package registries

import "sync"

// Registry holds the per-source fetchers. Every verification run that
// talks to a source goes through the single Client registered for it, so
// the source's rate limiter and circuit breaker are the synchronization
// point across concurrent per-paper verifications.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewRegistry creates an empty source registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]*Client),
	}
}

// Register adds a client for its source name. An existing client for the
// same source is replaced. This method is thread-safe.
func (r *Registry) Register(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[client.Source()] = client
}

// Get returns the client for a source, or nil if none is registered.
// This method is thread-safe.
func (r *Registry) Get(source string) *Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.clients[source]
}

// Sources returns the names of all registered sources. The returned
// slice is a snapshot. This method is thread-safe.
func (r *Registry) Sources() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources := make([]string, 0, len(r.clients))
	for name := range r.clients {
		sources = append(sources, name)
	}
	return sources
}

// States returns a snapshot of every source's circuit state keyed by
// source name. Sources without a breaker report a zero state.
func (r *Registry) States() map[string]CircuitState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	states := make(map[string]CircuitState, len(r.clients))
	for name, client := range r.clients {
		states[name] = client.CircuitState()
	}
	return states
}
