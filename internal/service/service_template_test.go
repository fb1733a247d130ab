package service

import (
	"context"
	"strings"
	"testing"

	"github.com/collectify/collectify/internal/logger"
	"github.com/collectify/collectify/internal/store"
	"github.com/collectify/collectify/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateService_CreateTemplate(t *testing.T) {
	st := newMemStore()
	svc := NewTemplateService(st, logger.Nop())
	ctx := context.Background()

	template, err := svc.CreateTemplate(ctx, "Books", []models.TemplateFieldInput{
		{Name: "Title", FieldType: models.FieldTypeText},
		{Name: "Year", FieldType: models.FieldTypeInteger},
		{Name: "Tags", FieldType: models.FieldTypeText, IsList: true},
	})
	require.NoError(t, err)
	require.NotZero(t, template.ID)
	require.Len(t, template.Fields, 3)

	for _, field := range template.Fields {
		assert.Equal(t, template.ID, field.TemplateID)
		assert.NotZero(t, field.ID)
	}
	assert.True(t, template.Fields[2].IsList)
	assert.Equal(t, 1, st.commits)
}

func TestTemplateService_CreateTemplate_Validation(t *testing.T) {
	svc := NewTemplateService(newMemStore(), logger.Nop())
	ctx := context.Background()

	_, err := svc.CreateTemplate(ctx, "   ", nil)
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.CreateTemplate(ctx, strings.Repeat("x", models.MaxNameLength+1), nil)
	assert.ErrorIs(t, err, ErrNameTooLong)

	_, err = svc.CreateTemplate(ctx, "Books", []models.TemplateFieldInput{
		{Name: "Location", FieldType: models.FieldType("geo")},
	})
	assert.ErrorIs(t, err, models.ErrUnsupportedFieldType)
}

func TestTemplateService_AddField(t *testing.T) {
	st := newMemStore()
	svc := NewTemplateService(st, logger.Nop())
	ctx := context.Background()

	template, err := svc.CreateTemplate(ctx, "Books", nil)
	require.NoError(t, err)

	definition, err := svc.AddField(ctx, template.ID, models.TemplateFieldInput{
		Name: "Cover", FieldType: models.FieldTypeImage,
	})
	require.NoError(t, err)
	assert.Equal(t, template.ID, definition.TemplateID)

	// existing items are unaffected; the new field simply has no values yet
	loaded, err := svc.GetTemplate(ctx, template.ID, true)
	require.NoError(t, err)
	require.Len(t, loaded.Fields, 1)

	_, err = svc.AddField(ctx, 999, models.TemplateFieldInput{Name: "X", FieldType: models.FieldTypeText})
	assert.ErrorIs(t, err, store.ErrTemplateNotFound)
}

func TestTemplateService_RemoveField(t *testing.T) {
	st := newMemStore()
	svc := NewTemplateService(st, logger.Nop())
	ctx := context.Background()

	template, err := svc.CreateTemplate(ctx, "Books", []models.TemplateFieldInput{
		{Name: "Title", FieldType: models.FieldTypeText},
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveField(ctx, template.Fields[0].ID))

	loaded, err := svc.GetTemplate(ctx, template.ID, true)
	require.NoError(t, err)
	assert.Empty(t, loaded.Fields)

	// removing an absent definition is a no-op
	assert.NoError(t, svc.RemoveField(ctx, 12345))
}

func TestTemplateService_DeleteTemplate_InUse(t *testing.T) {
	st := newMemStore()
	templates := NewTemplateService(st, logger.Nop())
	collections := NewCollectionService(st, logger.Nop())
	ctx := context.Background()

	template, err := templates.CreateTemplate(ctx, "Books", nil)
	require.NoError(t, err)

	collection, err := collections.CreateCollection(ctx, "My Books", nil, template.ID)
	require.NoError(t, err)

	err = templates.DeleteTemplate(ctx, template.ID)
	assert.ErrorIs(t, err, store.ErrTemplateInUse)

	require.NoError(t, collections.DeleteCollection(ctx, collection.ID))
	require.NoError(t, templates.DeleteTemplate(ctx, template.ID))

	_, err = templates.GetTemplate(ctx, template.ID, false)
	assert.ErrorIs(t, err, store.ErrTemplateNotFound)
}

func TestTemplateService_ListTemplates(t *testing.T) {
	st := newMemStore()
	svc := NewTemplateService(st, logger.Nop())
	ctx := context.Background()

	for _, name := range []string{"Books", "Vinyl", "Board games"} {
		_, err := svc.CreateTemplate(ctx, name, nil)
		require.NoError(t, err)
	}

	found, err := svc.ListTemplates(ctx, models.TemplateQuery{Search: "bo"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Board games", found[0].Name)
	assert.Equal(t, "Books", found[1].Name)

	descending, err := svc.ListTemplates(ctx, models.TemplateQuery{SortDescending: true})
	require.NoError(t, err)
	require.Len(t, descending, 3)
	assert.Equal(t, "Vinyl", descending[0].Name)
}
