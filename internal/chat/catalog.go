package chat

import (
	"errors"

	"unifiedai/internal/models"
)

// ErrCatalogNotLoaded is returned by lookups made before the model list
// has arrived.
var ErrCatalogNotLoaded = errors.New("model catalog not loaded")

type LoadState int

const (
	CatalogIdle LoadState = iota
	CatalogLoading
	CatalogReady
	CatalogFailed
)

// Catalog mirrors the server's model list for one page visit.
type Catalog struct {
	state  LoadState
	models []models.AIModel
	err    error
}

func (c *Catalog) SetLoading() {
	c.state = CatalogLoading
	c.models = nil
	c.err = nil
}

func (c *Catalog) SetModels(ms []models.AIModel) {
	c.state = CatalogReady
	c.models = ms
	c.err = nil
}

func (c *Catalog) SetError(err error) {
	c.state = CatalogFailed
	c.models = nil
	c.err = err
}

func (c *Catalog) State() LoadState { return c.state }
func (c *Catalog) Err() error       { return c.err }
func (c *Catalog) Ready() bool      { return c.state == CatalogReady }

func (c *Catalog) Models() []models.AIModel {
	return c.models
}

// Lookup finds a model by either of its identifiers.
func (c *Catalog) Lookup(id models.ID) (models.AIModel, bool, error) {
	if !c.Ready() {
		return models.AIModel{}, false, ErrCatalogNotLoaded
	}
	for _, m := range c.models {
		if m.Key() == id || m.ID == id || (m.AIModelID != "" && m.AIModelID == id) {
			return m, true, nil
		}
	}
	return models.AIModel{}, false, nil
}

// DisplayName is the model's name, or the raw id when it is unknown.
func (c *Catalog) DisplayName(id models.ID) string {
	m, ok, err := c.Lookup(id)
	if err != nil || !ok || m.Name == "" {
		return string(id)
	}
	return m.Name
}
