// catalog.go implements Service over the SQLite store and emits one audit
// entry per mutation and search. The store owns validation and integrity;
// this layer owns composition, audit and lifecycle.

package service

import (
	"context"

	"github.com/stashhq/stash/internal/log"
	"github.com/stashhq/stash/internal/store"
)

type catalog struct {
	store  store.Store
	author string
}

// Open opens (creating if necessary) the catalog database at path, installs
// the audit logger on it and returns a ready Service. author is recorded in
// audit entries.
func Open(path, author string) (Service, error) {
	s, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		s.Close()
		return nil, err
	}
	logger, err := log.New(s.DB())
	if err != nil {
		s.Close()
		return nil, err
	}
	log.Install(logger)
	return &catalog{store: s, author: author}, nil
}

// New wraps an existing store without touching global logging; used by
// tests that manage their own store lifecycle.
func New(s store.Store, author string) Service {
	return &catalog{store: s, author: author}
}

func (c *catalog) Close() error {
	log.Install(nil)
	return c.store.Close()
}

func (c *catalog) CreateLocation(ctx context.Context, id, name, description string, parentID *string) (*store.Location, error) {
	loc, err := c.store.CreateLocation(ctx, id, name, description, parentID)
	b := log.Event("location:add", "create").Author(c.author).Entity(id)
	if parentID != nil {
		b.Detail("parent", *parentID)
	}
	b.Write(err)
	return loc, err
}

func (c *catalog) Location(ctx context.Context, id string) (*store.Location, error) {
	return c.store.Location(ctx, id)
}

func (c *catalog) UpdateLocation(ctx context.Context, id, name, description string, parentID *string) (*store.Location, error) {
	loc, err := c.store.UpdateLocation(ctx, id, name, description, parentID)
	log.Event("location:edit", "update").Author(c.author).Entity(id).Write(err)
	return loc, err
}

func (c *catalog) MoveLocation(ctx context.Context, id string, parentID *string) (*store.Location, error) {
	cur, err := c.store.Location(ctx, id)
	if err != nil {
		return nil, err
	}
	loc, err := c.store.UpdateLocation(ctx, id, cur.Name, cur.Description, parentID)
	b := log.Event("location:mv", "move").Author(c.author).Entity(id)
	if parentID != nil {
		b.Detail("parent", *parentID)
	}
	b.Write(err)
	return loc, err
}

func (c *catalog) DeleteLocation(ctx context.Context, id string) error {
	err := c.store.DeleteLocation(ctx, id)
	log.Event("location:rm", "delete").Author(c.author).Entity(id).Write(err)
	return err
}

func (c *catalog) Children(ctx context.Context, id string) ([]store.Location, error) {
	return c.store.Children(ctx, id)
}

func (c *catalog) ValidateParent(ctx context.Context, id, parentID string) error {
	return c.store.ValidateParent(ctx, id, parentID)
}

func (c *catalog) SearchLocations(ctx context.Context, term string, offset, limit int) (*store.LocationPage, error) {
	page, err := c.store.SearchLocations(ctx, term, offset, limit)
	b := log.Event("search:locations", "search").Author(c.author).Detail("term", term)
	if page != nil {
		b.Detail("total", page.Total)
	}
	b.Write(err)
	return page, err
}

func (c *catalog) CreateItem(ctx context.Context, name, description, locationID string, properties map[string]string) (*store.Item, error) {
	item, err := c.store.CreateItem(ctx, name, description, locationID, properties)
	b := log.Event("item:add", "create").Author(c.author).Detail("location", locationID)
	if item != nil {
		b.Entity(item.ID)
	}
	b.Write(err)
	return item, err
}

func (c *catalog) Item(ctx context.Context, id string) (*store.Item, error) {
	return c.store.Item(ctx, id)
}

func (c *catalog) UpdateItem(ctx context.Context, id, name, description string, properties map[string]string) (*store.Item, error) {
	item, err := c.store.UpdateItem(ctx, id, name, description, properties)
	log.Event("item:edit", "update").Author(c.author).Entity(id).Write(err)
	return item, err
}

func (c *catalog) MoveItem(ctx context.Context, id, locationID string) (*store.Item, error) {
	item, err := c.store.MoveItem(ctx, id, locationID)
	log.Event("item:mv", "move").Author(c.author).Entity(id).Detail("location", locationID).Write(err)
	return item, err
}

func (c *catalog) DeleteItem(ctx context.Context, id string) error {
	err := c.store.DeleteItem(ctx, id)
	log.Event("item:rm", "delete").Author(c.author).Entity(id).Write(err)
	return err
}

func (c *catalog) ItemsIn(ctx context.Context, locationID string) ([]store.Item, error) {
	return c.store.ItemsIn(ctx, locationID)
}

func (c *catalog) SearchItems(ctx context.Context, term string, offset, limit int) (*store.ItemPage, error) {
	page, err := c.store.SearchItems(ctx, term, offset, limit)
	b := log.Event("search:items", "search").Author(c.author).Detail("term", term)
	if page != nil {
		b.Detail("total", page.Total)
	}
	b.Write(err)
	return page, err
}
