package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/sportsbazar/catalog-api/internal/domain/auth"
	"github.com/sportsbazar/catalog-api/internal/domain/model"
	apperrors "github.com/sportsbazar/catalog-api/internal/errors"
	"github.com/sportsbazar/catalog-api/internal/mocks"
	"github.com/sportsbazar/catalog-api/internal/service"
	"github.com/sportsbazar/catalog-api/internal/testutil"
)

type itemTestEnv struct {
	handlers   *ItemHandlers
	categories *mocks.MockCategoryRepository
	items      *mocks.MockItemRepository
}

func newItemTestEnv(t *testing.T) *itemTestEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	categories := mocks.NewMockCategoryRepository(ctrl)
	items := mocks.NewMockItemRepository(ctrl)
	itemSvc := service.NewItemService(service.ItemServiceOptions{
		Items:      items,
		Categories: categories,
	})
	categorySvc := service.NewCategoryService(service.CategoryServiceOptions{
		Categories:  categories,
		Items:       items,
		AdminUserID: 1,
	})
	return &itemTestEnv{
		handlers: &ItemHandlers{
			Svc:        itemSvc,
			Categories: categorySvc,
			Guard:      domainauth.Guard{AdminEmail: testAdminEmail},
		},
		categories: categories,
		items:      items,
	}
}

func TestItemHandlers_Create(t *testing.T) {
	env := newItemTestEnv(t)
	env.categories.EXPECT().GetByName(gomock.Any(), "Soccer").
		Return(&model.Category{ID: 2, Name: "Soccer"}, nil)
	env.items.EXPECT().
		Create(gomock.Any(), &model.CreateItemRequest{
			Name:        "Soccer Ball",
			Description: testutil.StringPtr("A regulation size 5 ball."),
			Price:       25,
			Quantity:    3,
			CategoryID:  2,
			UserID:      7,
		}).
		Return(&model.Item{ID: 9, Name: "Soccer Ball", CategoryID: 2, UserID: 7}, nil)

	form := url.Values{
		"name":        {"Soccer Ball"},
		"description": {"A regulation size 5 ball."},
		"price":       {"25"},
		"quantity":    {"3"},
	}
	r := postForm("/catalog/Soccer/new", authenticatedSession(), form)
	r.SetPathValue("category", "Soccer")
	w := httptest.NewRecorder()
	env.handlers.Create(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/catalog/Soccer", w.Header().Get("Location"))
	assert.Equal(t, `New item "Soccer Ball" is successfully added.`, flashMessage(t, w))
}

func TestItemHandlers_Create_Unauthenticated(t *testing.T) {
	env := newItemTestEnv(t)

	r := postForm("/catalog/Soccer/new", nil, url.Values{"name": {"Soccer Ball"}})
	r.SetPathValue("category", "Soccer")
	w := httptest.NewRecorder()
	env.handlers.Create(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestItemHandlers_Create_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		form      url.Values
		wantFlash string
	}{
		{
			name:      "empty name",
			form:      url.Values{"name": {"  "}},
			wantFlash: "Cannot add an item without a name.",
		},
		{
			name:      "reserved keyword",
			form:      url.Values{"name": {"Items"}},
			wantFlash: "You cannot use that word as an item's name.",
		},
		{
			name:      "price not a number",
			form:      url.Values{"name": {"Soccer Ball"}, "price": {"abc"}},
			wantFlash: "Price must be a whole number.",
		},
		{
			name:      "quantity not a number",
			form:      url.Values{"name": {"Soccer Ball"}, "quantity": {"lots"}},
			wantFlash: "Quantity must be a whole number.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newItemTestEnv(t)

			r := postForm("/catalog/Soccer/new", authenticatedSession(), tt.form)
			r.SetPathValue("category", "Soccer")
			w := httptest.NewRecorder()
			env.handlers.Create(w, r)

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/catalog/Soccer/new", w.Header().Get("Location"))
			assert.Equal(t, tt.wantFlash, flashMessage(t, w))
		})
	}
}

func TestItemHandlers_Create_MissingCategory(t *testing.T) {
	env := newItemTestEnv(t)
	env.categories.EXPECT().GetByName(gomock.Any(), "Knitting").
		Return(nil, apperrors.NotFound("category not found"))

	r := postForm("/catalog/Knitting/new", authenticatedSession(), url.Values{"name": {"Yarn"}})
	r.SetPathValue("category", "Knitting")
	w := httptest.NewRecorder()
	env.handlers.Create(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/catalog/categories", w.Header().Get("Location"))
	assert.Equal(t, `No category named "Knitting" found.`, flashMessage(t, w))
}

func TestItemHandlers_Create_DuplicateName(t *testing.T) {
	env := newItemTestEnv(t)
	env.categories.EXPECT().GetByName(gomock.Any(), "Soccer").
		Return(&model.Category{ID: 2, Name: "Soccer"}, nil)
	env.items.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.Conflict("item name already exists"))

	r := postForm("/catalog/Soccer/new", authenticatedSession(), url.Values{"name": {"Soccer Ball"}})
	r.SetPathValue("category", "Soccer")
	w := httptest.NewRecorder()
	env.handlers.Create(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/catalog/Soccer/new", w.Header().Get("Location"))
	assert.Equal(t, "Item name already exists. Please enter a new name.", flashMessage(t, w))
}

func TestItemHandlers_Edit(t *testing.T) {
	env := newItemTestEnv(t)
	env.categories.EXPECT().GetByName(gomock.Any(), "Soccer").
		Return(&model.Category{ID: 2, Name: "Soccer"}, nil).Times(2)
	env.items.EXPECT().GetByNameInCategory(gomock.Any(), int64(2), "Soccer Ball").
		Return(&model.Item{ID: 9, Name: "Soccer Ball", CategoryID: 2, UserID: 7}, nil)
	env.items.EXPECT().
		Update(gomock.Any(), int64(9), model.UpdateItemRequest{
			Name:  "Match Ball",
			Price: testutil.IntPtr(30),
		}).
		Return(&model.Item{ID: 9, Name: "Match Ball", CategoryID: 2, UserID: 7}, nil)

	form := url.Values{"name": {"Match Ball"}, "price": {"30"}}
	r := postForm("/catalog/Soccer/Soccer%20Ball/edit", authenticatedSession(), form)
	r.SetPathValue("category", "Soccer")
	r.SetPathValue("item", "Soccer Ball")
	w := httptest.NewRecorder()
	env.handlers.Edit(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/catalog/Soccer/Match%20Ball", w.Header().Get("Location"))
	assert.Equal(t, "Item successfully updated.", flashMessage(t, w))
}

func TestItemHandlers_Edit_NotOwner(t *testing.T) {
	env := newItemTestEnv(t)
	env.categories.EXPECT().GetByName(gomock.Any(), "Soccer").
		Return(&model.Category{ID: 2, Name: "Soccer"}, nil).Times(2)
	env.items.EXPECT().GetByNameInCategory(gomock.Any(), int64(2), "Soccer Ball").
		Return(&model.Item{ID: 9, Name: "Soccer Ball", CategoryID: 2, UserID: 99}, nil)

	r := postForm("/catalog/Soccer/Soccer%20Ball/edit", authenticatedSession(), url.Values{"name": {"Match Ball"}})
	r.SetPathValue("category", "Soccer")
	r.SetPathValue("item", "Soccer Ball")
	w := httptest.NewRecorder()
	env.handlers.Edit(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/catalog/myitems", w.Header().Get("Location"))
	assert.Equal(t, FlashNotItemOwner, flashMessage(t, w))
}

func TestItemHandlers_Edit_MissingItem(t *testing.T) {
	env := newItemTestEnv(t)
	env.categories.EXPECT().GetByName(gomock.Any(), "Soccer").
		Return(&model.Category{ID: 2, Name: "Soccer"}, nil).Times(2)
	env.items.EXPECT().GetByNameInCategory(gomock.Any(), int64(2), "Cricket Bat").
		Return(nil, apperrors.NotFound("item not found"))

	r := postForm("/catalog/Soccer/Cricket%20Bat/edit", authenticatedSession(), url.Values{"name": {"Bat"}})
	r.SetPathValue("category", "Soccer")
	r.SetPathValue("item", "Cricket Bat")
	w := httptest.NewRecorder()
	env.handlers.Edit(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/catalog/Soccer", w.Header().Get("Location"))
	assert.Equal(t, `No item named "Cricket Bat" found in "Soccer" category.`, flashMessage(t, w))
}

func TestItemHandlers_Edit_EmptyName(t *testing.T) {
	env := newItemTestEnv(t)
	env.categories.EXPECT().GetByName(gomock.Any(), "Soccer").
		Return(&model.Category{ID: 2, Name: "Soccer"}, nil).Times(2)
	env.items.EXPECT().GetByNameInCategory(gomock.Any(), int64(2), "Soccer Ball").
		Return(&model.Item{ID: 9, Name: "Soccer Ball", CategoryID: 2, UserID: 7}, nil)

	r := postForm("/catalog/Soccer/Soccer%20Ball/edit", authenticatedSession(), url.Values{"name": {"  "}})
	r.SetPathValue("category", "Soccer")
	r.SetPathValue("item", "Soccer Ball")
	w := httptest.NewRecorder()
	env.handlers.Edit(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/catalog/Soccer/Soccer%20Ball/edit", w.Header().Get("Location"))
	assert.Equal(t, "You cannot set the name empty.", flashMessage(t, w))
}

func TestItemHandlers_Delete(t *testing.T) {
	env := newItemTestEnv(t)
	env.categories.EXPECT().GetByName(gomock.Any(), "Soccer").
		Return(&model.Category{ID: 2, Name: "Soccer"}, nil).Times(2)
	env.items.EXPECT().GetByNameInCategory(gomock.Any(), int64(2), "Soccer Ball").
		Return(&model.Item{ID: 9, Name: "Soccer Ball", CategoryID: 2, UserID: 7}, nil)
	env.items.EXPECT().Delete(gomock.Any(), int64(9)).Return(true, nil)

	r := postForm("/catalog/Soccer/Soccer%20Ball/delete", authenticatedSession(), nil)
	r.SetPathValue("category", "Soccer")
	r.SetPathValue("item", "Soccer Ball")
	w := httptest.NewRecorder()
	env.handlers.Delete(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/catalog/Soccer", w.Header().Get("Location"))
	assert.Equal(t, `Item "Soccer Ball" successfully deleted`, flashMessage(t, w))
}

func TestItemHandlers_Delete_NotOwner(t *testing.T) {
	env := newItemTestEnv(t)
	env.categories.EXPECT().GetByName(gomock.Any(), "Soccer").
		Return(&model.Category{ID: 2, Name: "Soccer"}, nil).Times(2)
	env.items.EXPECT().GetByNameInCategory(gomock.Any(), int64(2), "Soccer Ball").
		Return(&model.Item{ID: 9, Name: "Soccer Ball", CategoryID: 2, UserID: 99}, nil)

	r := postForm("/catalog/Soccer/Soccer%20Ball/delete", authenticatedSession(), nil)
	r.SetPathValue("category", "Soccer")
	r.SetPathValue("item", "Soccer Ball")
	w := httptest.NewRecorder()
	env.handlers.Delete(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/catalog/myitems", w.Header().Get("Location"))
	require.Equal(t, "Error: You cannot delete an item that you did not add !", flashMessage(t, w))
}

// Admin sessions do not get a free pass on items they do not own.
func TestItemHandlers_Delete_AdminNotOwner(t *testing.T) {
	env := newItemTestEnv(t)
	env.categories.EXPECT().GetByName(gomock.Any(), "Soccer").
		Return(&model.Category{ID: 2, Name: "Soccer"}, nil).Times(2)
	env.items.EXPECT().GetByNameInCategory(gomock.Any(), int64(2), "Soccer Ball").
		Return(&model.Item{ID: 9, Name: "Soccer Ball", CategoryID: 2, UserID: 99}, nil)

	r := postForm("/catalog/Soccer/Soccer%20Ball/delete", adminSession(), nil)
	r.SetPathValue("category", "Soccer")
	r.SetPathValue("item", "Soccer Ball")
	w := httptest.NewRecorder()
	env.handlers.Delete(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, FlashNotItemDeleter, flashMessage(t, w))
}
