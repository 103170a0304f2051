package httpx

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/sportsbazar/catalog-api/internal/core"
	"github.com/sportsbazar/catalog-api/internal/domain/model"
	apperrors "github.com/sportsbazar/catalog-api/internal/errors"
	"github.com/sportsbazar/catalog-api/internal/service"
)

// Notices shown on the browse pages when a collection is empty.
const (
	noticeNoCategories = "No category added yet."
	noticeNoItems      = "No item added yet."
)

// CatalogHandlers serves the public browse pages and the read-only JSON API.
type CatalogHandlers struct {
	Categories *service.CategoryService
	Items      *service.ItemService
	Users      core.UserRepository
	Logger     *slog.Logger
}

// homeResponse is the landing page payload: all categories in name order plus
// the most recently added items across the whole catalog.
type homeResponse struct {
	Flash       string            `json:"flash,omitempty"`
	Categories  []*model.Category `json:"categories"`
	LatestItems []*model.Item     `json:"latest_items"`
}

// Home handles GET / and GET /catalog.
func (h *CatalogHandlers) Home(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Categories.List(r.Context())
	if err != nil {
		RenderError(w, err)
		return
	}
	latest, err := h.Items.Latest(r.Context())
	if err != nil {
		RenderError(w, err)
		return
	}
	flash, _ := PopFlash(w, r)
	WriteJSON(w, http.StatusOK, homeResponse{
		Flash:       flash,
		Categories:  categories,
		LatestItems: latest,
	})
}

type categoriesResponse struct {
	Flash      string            `json:"flash,omitempty"`
	Notice     string            `json:"notice,omitempty"`
	Categories []*model.Category `json:"categories"`
}

// ListCategories handles GET /catalog/categories.
func (h *CatalogHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Categories.List(r.Context())
	if err != nil {
		RenderError(w, err)
		return
	}
	resp := categoriesResponse{Categories: categories}
	if len(categories) == 0 {
		resp.Notice = noticeNoCategories
	}
	resp.Flash, _ = PopFlash(w, r)
	WriteJSON(w, http.StatusOK, resp)
}

type categoryItemsResponse struct {
	Flash    string          `json:"flash,omitempty"`
	Notice   string          `json:"notice,omitempty"`
	Category *model.Category `json:"category"`
	Items    []*model.Item   `json:"items"`
}

// ShowItems handles GET /catalog/{category}. An unknown category sends the
// visitor back to the category list with a notice instead of a bare 404.
func (h *CatalogHandlers) ShowItems(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("category")
	category, items, err := h.Items.ListByCategory(r.Context(), name)
	if err != nil {
		if apperrors.IsNotFound(err) {
			RedirectWithFlash(w, r, "/catalog/categories", missingCategoryFlash(name))
			return
		}
		RenderError(w, err)
		return
	}
	resp := categoryItemsResponse{Category: category, Items: items}
	if len(items) == 0 {
		resp.Notice = noticeNoItems
	}
	resp.Flash, _ = PopFlash(w, r)
	WriteJSON(w, http.StatusOK, resp)
}

type itemDetailResponse struct {
	Flash    string          `json:"flash,omitempty"`
	Category *model.Category `json:"category"`
	Item     *model.Item     `json:"item"`
	Owner    *model.User     `json:"owner,omitempty"`
}

// ShowItem handles GET /catalog/{category}/{item}. The owner record rides
// along so the page can attribute the listing.
func (h *CatalogHandlers) ShowItem(w http.ResponseWriter, r *http.Request) {
	categoryName := r.PathValue("category")
	itemName := r.PathValue("item")

	category, err := h.Categories.GetByName(r.Context(), categoryName)
	if err != nil {
		if apperrors.IsNotFound(err) {
			RedirectWithFlash(w, r, "/catalog/categories", missingCategoryFlash(categoryName))
			return
		}
		RenderError(w, err)
		return
	}
	item, err := h.Items.FindInCategory(r.Context(), categoryName, itemName)
	if err != nil {
		if apperrors.IsNotFound(err) {
			RedirectWithFlash(w, r, categoryPath(categoryName), missingItemFlash(itemName, categoryName))
			return
		}
		RenderError(w, err)
		return
	}

	resp := itemDetailResponse{Category: category, Item: item}
	owner, err := h.Users.GetByID(r.Context(), item.UserID)
	if err != nil {
		// The item is still worth showing when the owner lookup fails.
		h.logger().Warn("item owner lookup failed",
			"item_id", item.ID, "user_id", item.UserID, "error", err)
	} else {
		resp.Owner = owner
	}
	resp.Flash, _ = PopFlash(w, r)
	WriteJSON(w, http.StatusOK, resp)
}

type myItemsResponse struct {
	Flash  string        `json:"flash,omitempty"`
	Notice string        `json:"notice,omitempty"`
	Items  []*model.Item `json:"items"`
}

// MyItems handles GET /catalog/myitems, listing the signed-in user's items.
func (h *CatalogHandlers) MyItems(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil || !sess.Authenticated() {
		RedirectWithFlash(w, r, "/login", FlashSignInRequired)
		return
	}
	items, err := h.Items.ListMine(r.Context(), sess.UserID)
	if err != nil {
		RenderError(w, err)
		return
	}
	resp := myItemsResponse{Items: items}
	if len(items) == 0 {
		resp.Notice = noticeNoItems
	}
	resp.Flash, _ = PopFlash(w, r)
	WriteJSON(w, http.StatusOK, resp)
}

// CatalogJSON handles GET /catalog.json, the full catalog export.
func (h *CatalogHandlers) CatalogJSON(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Categories.ListWithItems(r.Context())
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"Categories": categories})
}

// CategoryJSON handles GET /catalog/{category}/JSON.
func (h *CatalogHandlers) CategoryJSON(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("category")
	category, items, err := h.Items.ListByCategory(r.Context(), name)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"category": model.CategoryWithItems{
		ID:    category.ID,
		Name:  category.Name,
		Items: items,
	}})
}

// ItemJSON handles GET /catalog/{category}/{item}/JSON.
func (h *CatalogHandlers) ItemJSON(w http.ResponseWriter, r *http.Request) {
	item, err := h.Items.FindInCategory(r.Context(), r.PathValue("category"), r.PathValue("item"))
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"Item": item})
}

func (h *CatalogHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func missingCategoryFlash(name string) string {
	return fmt.Sprintf("No category named %q found.", name)
}

func missingItemFlash(itemName, categoryName string) string {
	return fmt.Sprintf("No item named %q found in %q category.", itemName, categoryName)
}

func categoryPath(name string) string {
	return "/catalog/" + url.PathEscape(name)
}
