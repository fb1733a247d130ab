package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/collectify/collectify/internal/logger"
	"github.com/collectify/collectify/internal/mock"
	"github.com/collectify/collectify/internal/service"
	"github.com/collectify/collectify/internal/store"
	"github.com/collectify/collectify/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type handlerMocks struct {
	templates   *mock.MockTemplateService
	collections *mock.MockCollectionService
	items       *mock.MockItemService
}

func newTestServer(t *testing.T) (*httptest.Server, handlerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	mocks := handlerMocks{
		templates:   mock.NewMockTemplateService(ctrl),
		collections: mock.NewMockCollectionService(ctrl),
		items:       mock.NewMockItemService(ctrl),
	}
	h := NewHandler(&service.Services{
		TemplateService:   mocks.templates,
		CollectionService: mocks.collections,
		ItemService:       mocks.items,
	}, logger.Nop())

	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	return srv, mocks
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	defer resp.Body.Close()

	var envelope errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestHandler_CreateTemplate(t *testing.T) {
	srv, mocks := newTestServer(t)

	fields := []models.TemplateFieldInput{{Name: "Title", FieldType: models.FieldTypeText}}
	mocks.templates.EXPECT().
		CreateTemplate(gomock.Any(), "Books", fields).
		Return(&models.Template{ID: 1, Name: "Books"}, nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/templates", createTemplateRequest{
		Name:   "Books",
		Fields: fields,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var template models.Template
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&template))
	assert.Equal(t, int64(1), template.ID)
}

func TestHandler_CreateTemplate_InvalidJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/templates", "application/json", bytes.NewBufferString("{not json"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "bad_request", decodeError(t, resp).Code)
}

func TestHandler_GetTemplate_NotFound(t *testing.T) {
	srv, mocks := newTestServer(t)

	mocks.templates.EXPECT().
		GetTemplate(gomock.Any(), int64(42), false).
		Return(nil, store.ErrTemplateNotFound)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/templates/42", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "template_not_found", decodeError(t, resp).Code)
}

func TestHandler_GetTemplate_IncludeFields(t *testing.T) {
	srv, mocks := newTestServer(t)

	mocks.templates.EXPECT().
		GetTemplate(gomock.Any(), int64(1), true).
		Return(&models.Template{ID: 1, Name: "Books"}, nil)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/templates/1?includeFields=true", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_DeleteTemplate_InUse(t *testing.T) {
	srv, mocks := newTestServer(t)

	mocks.templates.EXPECT().
		DeleteTemplate(gomock.Any(), int64(1)).
		Return(fmt.Errorf("%w: 2 collections", store.ErrTemplateInUse))

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/templates/1", nil)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "template_in_use", decodeError(t, resp).Code)
}

func TestHandler_InvalidIDParam(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/templates/abc", nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "bad_request", decodeError(t, resp).Code)
}

func TestHandler_CreateItem_LinkErrors(t *testing.T) {
	srv, mocks := newTestServer(t)

	prev := int64(7)

	mocks.items.EXPECT().
		CreateItem(gomock.Any(), int64(2), gomock.Any(), &prev, nil).
		Return(nil, fmt.Errorf("%w: item 7 already has a next item", service.ErrLinkConflict))

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/collections/2/items", itemRequest{PreviousItemID: &prev})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "link_conflict", decodeError(t, resp).Code)

	mocks.items.EXPECT().
		CreateItem(gomock.Any(), int64(2), gomock.Any(), &prev, nil).
		Return(nil, fmt.Errorf("%w: item cannot link to itself", service.ErrInvalidLink))

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/collections/2/items", itemRequest{PreviousItemID: &prev})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_link", decodeError(t, resp).Code)
}

func TestHandler_ListItems_QueryParams(t *testing.T) {
	srv, mocks := newTestServer(t)

	sortBy := int64(11)
	expected := models.ItemQuery{
		Search:                  "dune",
		SortByFieldDefinitionID: &sortBy,
		Descending:              true,
	}
	mocks.items.EXPECT().
		GetItemsForCollection(gomock.Any(), int64(2), expected).
		Return([]models.Item{{ID: 5, CollectionID: 2}}, nil)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/collections/2/items?search=dune&sortBy=11&sort=desc", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var items []models.Item
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, int64(5), items[0].ID)
}

func TestHandler_UpdateCollection(t *testing.T) {
	srv, mocks := newTestServer(t)

	description := "updated"
	mocks.collections.EXPECT().
		UpdateCollection(gomock.Any(), int64(3), "Favourites", &description).
		Return(&models.Collection{ID: 3, Name: "Favourites", Description: &description}, nil)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/collections/3", updateCollectionRequest{
		Name:        "Favourites",
		Description: &description,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_RemoveFieldValue(t *testing.T) {
	srv, mocks := newTestServer(t)

	mocks.items.EXPECT().
		RemoveFieldValue(gomock.Any(), int64(5), int64(11), "sci-fi").
		Return(nil)

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/items/5/values", removeFieldValueRequest{
		FieldDefinitionID: 11,
		Value:             "sci-fi",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	mocks.items.EXPECT().
		RemoveFieldValue(gomock.Any(), int64(5), int64(11), "fantasy").
		Return(fmt.Errorf("%w: no value of field 11 matches", store.ErrFieldValueNotFound))

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/items/5/values", removeFieldValueRequest{
		FieldDefinitionID: 11,
		Value:             "fantasy",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "field_value_not_found", decodeError(t, resp).Code)
}

func TestHandler_DeleteItem_NoContent(t *testing.T) {
	srv, mocks := newTestServer(t)

	mocks.items.EXPECT().
		DeleteItem(gomock.Any(), int64(9)).
		Return(nil)

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/items/9", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestHandler_TraceIDHeader(t *testing.T) {
	srv, mocks := newTestServer(t)

	mocks.templates.EXPECT().
		ListTemplates(gomock.Any(), models.TemplateQuery{}).
		Return(nil, nil)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/templates", nil)
	defer resp.Body.Close()

	assert.NotEmpty(t, resp.Header.Get(traceIDHeader))
}
