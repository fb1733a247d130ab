package service

import (
	"context"
	"sort"
	"strings"

	"github.com/collectify/collectify/internal/store"
	"github.com/collectify/collectify/models"
)

var _ store.Store = (*memStore)(nil)

// memStore is an in-memory store.Store for the service tests. Begin hands
// back the same state, so a unit of work mutates the store directly;
// Commit and Rollback only count invocations for assertions.
type memStore struct {
	templates   map[int64]models.Template
	fields      map[int64]models.FieldDefinition
	collections map[int64]models.Collection
	items       map[int64]models.Item
	values      map[int64]models.FieldValue

	nextID    int64
	commits   int
	rollbacks int
}

func newMemStore() *memStore {
	return &memStore{
		templates:   make(map[int64]models.Template),
		fields:      make(map[int64]models.FieldDefinition),
		collections: make(map[int64]models.Collection),
		items:       make(map[int64]models.Item),
		values:      make(map[int64]models.FieldValue),
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) Templates() store.TemplateRepository {
	return &memTemplateRepo{s}
}

func (s *memStore) FieldDefinitions() store.FieldDefinitionRepository {
	return &memFieldDefinitionRepo{s}
}

func (s *memStore) Collections() store.CollectionRepository {
	return &memCollectionRepo{s}
}

func (s *memStore) Items() store.ItemRepository {
	return &memItemRepo{s}
}

func (s *memStore) FieldValues() store.FieldValueRepository {
	return &memFieldValueRepo{s}
}

func (s *memStore) Begin(_ context.Context) (store.UnitOfWork, error) {
	return &memUnitOfWork{s}, nil
}

func (s *memStore) Close() error { return nil }

type memUnitOfWork struct {
	*memStore
}

func (u *memUnitOfWork) Commit() error {
	u.commits++
	return nil
}

func (u *memUnitOfWork) Rollback() error {
	u.rollbacks++
	return nil
}

type memTemplateRepo struct{ s *memStore }

func (r *memTemplateRepo) GetByID(_ context.Context, id int64) (*models.Template, error) {
	t, ok := r.s.templates[id]
	if !ok {
		return nil, store.ErrTemplateNotFound
	}
	return &t, nil
}

func (r *memTemplateRepo) GetWithFields(ctx context.Context, id int64) (*models.Template, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Fields, _ = (&memFieldDefinitionRepo{r.s}).ListByTemplate(ctx, id)
	return t, nil
}

func (r *memTemplateRepo) List(_ context.Context, q models.TemplateQuery) ([]models.Template, error) {
	out := make([]models.Template, 0, len(r.s.templates))
	for _, t := range r.s.templates {
		if q.Search != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(q.Search)) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(a, b int) bool {
		if q.SortDescending {
			return out[a].Name > out[b].Name
		}
		return out[a].Name < out[b].Name
	})
	return out, nil
}

func (r *memTemplateRepo) Add(_ context.Context, template *models.Template) error {
	template.ID = r.s.id()
	r.s.templates[template.ID] = models.Template{ID: template.ID, Name: template.Name}
	return nil
}

func (r *memTemplateRepo) Remove(_ context.Context, id int64) error {
	if _, ok := r.s.templates[id]; !ok {
		return store.ErrTemplateNotFound
	}
	for _, c := range r.s.collections {
		if c.TemplateID == id {
			return store.ErrTemplateInUse
		}
	}
	for fid, f := range r.s.fields {
		if f.TemplateID == id {
			delete(r.s.fields, fid)
		}
	}
	delete(r.s.templates, id)
	return nil
}

type memFieldDefinitionRepo struct{ s *memStore }

func (r *memFieldDefinitionRepo) GetByID(_ context.Context, id int64) (*models.FieldDefinition, error) {
	f, ok := r.s.fields[id]
	if !ok {
		return nil, store.ErrFieldDefinitionNotFound
	}
	return &f, nil
}

func (r *memFieldDefinitionRepo) ListByTemplate(_ context.Context, templateID int64) ([]models.FieldDefinition, error) {
	out := make([]models.FieldDefinition, 0)
	for _, f := range r.s.fields {
		if f.TemplateID == templateID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (r *memFieldDefinitionRepo) ListByIDs(_ context.Context, ids []int64) ([]models.FieldDefinition, error) {
	out := make([]models.FieldDefinition, 0, len(ids))
	for _, id := range ids {
		if f, ok := r.s.fields[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memFieldDefinitionRepo) Add(_ context.Context, definition *models.FieldDefinition) error {
	definition.ID = r.s.id()
	r.s.fields[definition.ID] = *definition
	return nil
}

func (r *memFieldDefinitionRepo) Remove(_ context.Context, id int64) error {
	if _, ok := r.s.fields[id]; !ok {
		return store.ErrFieldDefinitionNotFound
	}
	for vid, v := range r.s.values {
		if v.FieldDefinitionID == id {
			delete(r.s.values, vid)
		}
	}
	delete(r.s.fields, id)
	return nil
}

type memCollectionRepo struct{ s *memStore }

func (r *memCollectionRepo) GetByID(_ context.Context, id int64) (*models.Collection, error) {
	c, ok := r.s.collections[id]
	if !ok {
		return nil, store.ErrCollectionNotFound
	}
	return &c, nil
}

func (r *memCollectionRepo) List(_ context.Context, q models.CollectionQuery) ([]models.Collection, error) {
	needle := strings.ToLower(q.Search)
	out := make([]models.Collection, 0, len(r.s.collections))
	for _, c := range r.s.collections {
		if q.TemplateID != nil && c.TemplateID != *q.TemplateID {
			continue
		}
		if needle != "" {
			inName := strings.Contains(strings.ToLower(c.Name), needle)
			inDescription := c.Description != nil && strings.Contains(strings.ToLower(*c.Description), needle)
			if !inName && !inDescription {
				continue
			}
		}
		out = append(out, c)
	}
	sort.Slice(out, func(a, b int) bool {
		if q.SortDescending {
			return out[a].Name > out[b].Name
		}
		return out[a].Name < out[b].Name
	})
	return out, nil
}

func (r *memCollectionRepo) CountByTemplate(_ context.Context, templateID int64) (int64, error) {
	var n int64
	for _, c := range r.s.collections {
		if c.TemplateID == templateID {
			n++
		}
	}
	return n, nil
}

func (r *memCollectionRepo) Add(_ context.Context, collection *models.Collection) error {
	collection.ID = r.s.id()
	r.s.collections[collection.ID] = *collection
	return nil
}

func (r *memCollectionRepo) Update(_ context.Context, collection *models.Collection) error {
	if _, ok := r.s.collections[collection.ID]; !ok {
		return store.ErrCollectionNotFound
	}
	r.s.collections[collection.ID] = *collection
	return nil
}

func (r *memCollectionRepo) Remove(_ context.Context, id int64) error {
	if _, ok := r.s.collections[id]; !ok {
		return store.ErrCollectionNotFound
	}
	for iid, item := range r.s.items {
		if item.CollectionID == id {
			for vid, v := range r.s.values {
				if v.ItemID == iid {
					delete(r.s.values, vid)
				}
			}
			delete(r.s.items, iid)
		}
	}
	delete(r.s.collections, id)
	return nil
}

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) GetByID(_ context.Context, id int64) (*models.Item, error) {
	item, ok := r.s.items[id]
	if !ok {
		return nil, store.ErrItemNotFound
	}
	return &item, nil
}

func (r *memItemRepo) ListByCollection(_ context.Context, collectionID int64, descending bool) ([]models.Item, error) {
	out := make([]models.Item, 0)
	for _, item := range r.s.items {
		if item.CollectionID == collectionID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].CreationDate.Equal(out[b].CreationDate) {
			if descending {
				return out[a].ID > out[b].ID
			}
			return out[a].ID < out[b].ID
		}
		if descending {
			return out[a].CreationDate.After(out[b].CreationDate)
		}
		return out[a].CreationDate.Before(out[b].CreationDate)
	})
	return out, nil
}

func (r *memItemRepo) Add(_ context.Context, item *models.Item) error {
	item.ID = r.s.id()
	stored := *item
	stored.FieldValues = nil
	r.s.items[item.ID] = stored
	return nil
}

func (r *memItemRepo) SetLinks(_ context.Context, id int64, previousItemID, nextItemID *int64) error {
	item, ok := r.s.items[id]
	if !ok {
		return store.ErrItemNotFound
	}
	item.PreviousItemID = previousItemID
	item.NextItemID = nextItemID
	r.s.items[id] = item
	return nil
}

func (r *memItemRepo) SetPrevious(_ context.Context, id int64, previousItemID *int64) error {
	item, ok := r.s.items[id]
	if !ok {
		return store.ErrItemNotFound
	}
	item.PreviousItemID = previousItemID
	r.s.items[id] = item
	return nil
}

func (r *memItemRepo) SetNext(_ context.Context, id int64, nextItemID *int64) error {
	item, ok := r.s.items[id]
	if !ok {
		return store.ErrItemNotFound
	}
	item.NextItemID = nextItemID
	r.s.items[id] = item
	return nil
}

func (r *memItemRepo) ClearLinksForCollection(_ context.Context, collectionID int64) error {
	for id, item := range r.s.items {
		if item.CollectionID == collectionID {
			item.PreviousItemID = nil
			item.NextItemID = nil
			r.s.items[id] = item
		}
	}
	return nil
}

func (r *memItemRepo) Remove(_ context.Context, id int64) error {
	if _, ok := r.s.items[id]; !ok {
		return store.ErrItemNotFound
	}
	for vid, v := range r.s.values {
		if v.ItemID == id {
			delete(r.s.values, vid)
			continue
		}
		// related_item_id is SET NULL on delete
		if v.Value.RelatedItemID != nil && *v.Value.RelatedItemID == id {
			v.Value.RelatedItemID = nil
			r.s.values[vid] = v
		}
	}
	delete(r.s.items, id)
	return nil
}

type memFieldValueRepo struct{ s *memStore }

func (r *memFieldValueRepo) ListByItem(ctx context.Context, itemID int64) ([]models.FieldValue, error) {
	grouped, err := r.ListByItems(ctx, []int64{itemID})
	if err != nil {
		return nil, err
	}
	return grouped[itemID], nil
}

func (r *memFieldValueRepo) ListByItems(_ context.Context, itemIDs []int64) (map[int64][]models.FieldValue, error) {
	wanted := make(map[int64]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	grouped := make(map[int64][]models.FieldValue)
	for _, v := range r.s.values {
		if wanted[v.ItemID] {
			grouped[v.ItemID] = append(grouped[v.ItemID], v)
		}
	}
	for id := range grouped {
		vs := grouped[id]
		sort.Slice(vs, func(a, b int) bool { return vs[a].ID < vs[b].ID })
		grouped[id] = vs
	}
	return grouped, nil
}

func (r *memFieldValueRepo) Add(_ context.Context, value *models.FieldValue) error {
	if _, ok := r.s.items[value.ItemID]; !ok {
		return store.ErrConstraintViolation
	}
	if _, ok := r.s.fields[value.FieldDefinitionID]; !ok {
		return store.ErrConstraintViolation
	}
	value.ID = r.s.id()
	r.s.values[value.ID] = *value
	return nil
}

func (r *memFieldValueRepo) Remove(_ context.Context, id int64) error {
	if _, ok := r.s.values[id]; !ok {
		return store.ErrFieldValueNotFound
	}
	delete(r.s.values, id)
	return nil
}

func (r *memFieldValueRepo) RemoveByItem(_ context.Context, itemID int64) error {
	for vid, v := range r.s.values {
		if v.ItemID == itemID {
			delete(r.s.values, vid)
		}
	}
	return nil
}
