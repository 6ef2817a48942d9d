package domain

import "context"

// StaticCatalog is an in-memory model catalog, fixed for the process
// lifetime. Order of registration is preserved for listing.
type StaticCatalog struct {
	models []ModelDescriptor
	index  map[string]int
}

// NewStaticCatalog builds a catalog from the given descriptors.
// Descriptors must have unique, non-empty ids and name their provider.
func NewStaticCatalog(models ...ModelDescriptor) (*StaticCatalog, error) {
	catalog := &StaticCatalog{
		models: make([]ModelDescriptor, 0, len(models)),
		index:  make(map[string]int, len(models)),
	}

	for _, m := range models {
		if m.ID == "" {
			return nil, NewError(KindConfiguration, "model id cannot be empty")
		}
		if m.Provider == "" {
			return nil, Errorf(KindConfiguration, "model %s does not name a provider", m.ID)
		}
		if m.InputPerMTok < 0 || m.OutputPerMTok < 0 {
			return nil, Errorf(KindConfiguration, "model %s has negative pricing", m.ID)
		}
		if _, exists := catalog.index[m.ID]; exists {
			return nil, Errorf(KindConfiguration, "model %s registered twice", m.ID)
		}

		catalog.index[m.ID] = len(catalog.models)
		catalog.models = append(catalog.models, m)
	}

	return catalog, nil
}

// List returns all descriptors in registration order.
func (c *StaticCatalog) List(_ context.Context) []ModelDescriptor {
	out := make([]ModelDescriptor, len(c.models))
	copy(out, c.models)
	return out
}

// Get returns the descriptor for a model id.
func (c *StaticCatalog) Get(_ context.Context, modelID string) (ModelDescriptor, error) {
	if modelID == "" {
		return ModelDescriptor{}, NewError(KindNotFound, "model id cannot be empty")
	}

	i, exists := c.index[modelID]
	if !exists {
		return ModelDescriptor{}, Errorf(KindNotFound, "model %s is not in the catalog", modelID)
	}

	return c.models[i], nil
}
