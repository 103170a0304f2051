package httpx

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	domainauth "github.com/sportsbazar/catalog-api/internal/domain/auth"
	"github.com/sportsbazar/catalog-api/internal/domain/model"
	apperrors "github.com/sportsbazar/catalog-api/internal/errors"
	"github.com/sportsbazar/catalog-api/internal/service"
)

// ItemHandlers serves the item mutations. Creation needs a signed-in user;
// edits and deletes additionally require ownership of the item.
type ItemHandlers struct {
	Svc        *service.ItemService
	Categories *service.CategoryService
	Guard      domainauth.Guard
	Metrics    MutationRecorder
	Logger     *slog.Logger
}

func (h *ItemHandlers) recordMutation(action string) {
	if h.Metrics != nil {
		h.Metrics.RecordMutation("item", action)
	}
}

// reservedItemName reports whether the name collides with a route keyword.
func reservedItemName(name string) bool {
	switch strings.ToLower(name) {
	case "categories", "item", "items":
		return true
	}
	return false
}

// Create handles POST /catalog/{category}/new.
func (h *ItemHandlers) Create(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil || !sess.Authenticated() {
		RedirectWithFlash(w, r, "/login", FlashSignInRequired)
		return
	}

	categoryName := r.PathValue("category")
	newPath := categoryPath(categoryName) + "/new"

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		RedirectWithFlash(w, r, newPath, "Cannot add an item without a name.")
		return
	}
	if reservedItemName(name) {
		RedirectWithFlash(w, r, newPath, "You cannot use that word as an item's name.")
		return
	}

	req := &model.CreateItemRequest{Name: name}
	if desc := strings.TrimSpace(r.FormValue("description")); desc != "" {
		req.Description = &desc
	}
	var ok bool
	if req.Price, ok = formInt(w, r, "price", newPath); !ok {
		return
	}
	if req.Quantity, ok = formInt(w, r, "quantity", newPath); !ok {
		return
	}

	item, err := h.Svc.Create(r.Context(), categoryName, sess.UserID, req)
	if err != nil {
		switch {
		case apperrors.IsNotFound(err):
			RedirectWithFlash(w, r, "/catalog/categories", missingCategoryFlash(categoryName))
		case apperrors.IsConflict(err):
			RedirectWithFlash(w, r, newPath, "Item name already exists. Please enter a new name.")
		case apperrors.IsValidation(err):
			RedirectWithFlash(w, r, newPath, err.Error())
		default:
			RenderError(w, err)
		}
		return
	}
	h.recordMutation("create")
	RedirectWithFlash(w, r, categoryPath(categoryName),
		fmt.Sprintf("New item %q is successfully added.", item.Name))
}

// Edit handles POST /catalog/{category}/{item}/edit. Empty form fields leave
// the stored values untouched.
func (h *ItemHandlers) Edit(w http.ResponseWriter, r *http.Request) {
	categoryName := r.PathValue("category")
	itemName := r.PathValue("item")

	item, ok := h.lookupItem(w, r, categoryName, itemName)
	if !ok {
		return
	}
	sess := GetSessionFromContext(r.Context())
	if d := h.Guard.Authorize(sess, item.AuthResource()); !d.Allowed {
		h.redirectDenied(w, r, d, FlashNotItemOwner)
		return
	}

	editPath := itemPath(categoryName, itemName) + "/edit"
	newName := strings.TrimSpace(r.FormValue("name"))
	if newName == "" {
		RedirectWithFlash(w, r, editPath, "You cannot set the name empty.")
		return
	}
	if reservedItemName(newName) {
		RedirectWithFlash(w, r, editPath, "You cannot use that word as an item's name.")
		return
	}

	req := model.UpdateItemRequest{Name: newName}
	if desc := strings.TrimSpace(r.FormValue("description")); desc != "" {
		req.Description = &desc
	}
	if raw := strings.TrimSpace(r.FormValue("price")); raw != "" {
		price, err := strconv.Atoi(raw)
		if err != nil {
			RedirectWithFlash(w, r, editPath, "Price must be a whole number.")
			return
		}
		req.Price = &price
	}
	if raw := strings.TrimSpace(r.FormValue("quantity")); raw != "" {
		quantity, err := strconv.Atoi(raw)
		if err != nil {
			RedirectWithFlash(w, r, editPath, "Quantity must be a whole number.")
			return
		}
		req.Quantity = &quantity
	}

	updated, err := h.Svc.Update(r.Context(), item.ID, req)
	if err != nil {
		switch {
		case apperrors.IsConflict(err):
			RedirectWithFlash(w, r, editPath, "Item name already exists. Please enter a new name.")
		case apperrors.IsValidation(err):
			RedirectWithFlash(w, r, editPath, err.Error())
		default:
			RenderError(w, err)
		}
		return
	}
	h.recordMutation("update")
	RedirectWithFlash(w, r, itemPath(categoryName, updated.Name), "Item successfully updated.")
}

// Delete handles POST /catalog/{category}/{item}/delete.
func (h *ItemHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	categoryName := r.PathValue("category")
	itemName := r.PathValue("item")

	item, ok := h.lookupItem(w, r, categoryName, itemName)
	if !ok {
		return
	}
	sess := GetSessionFromContext(r.Context())
	if d := h.Guard.Authorize(sess, item.AuthResource()); !d.Allowed {
		h.redirectDenied(w, r, d, FlashNotItemDeleter)
		return
	}

	if _, err := h.Svc.Delete(r.Context(), item.ID); err != nil {
		RenderError(w, err)
		return
	}
	h.recordMutation("delete")
	RedirectWithFlash(w, r, categoryPath(categoryName),
		fmt.Sprintf("Item %q successfully deleted", item.Name))
}

// lookupItem resolves the category, then the item within it, emitting the
// matching redirect on a miss. Reports whether the item was found.
func (h *ItemHandlers) lookupItem(w http.ResponseWriter, r *http.Request, categoryName, itemName string) (*model.Item, bool) {
	if _, err := h.Categories.GetByName(r.Context(), categoryName); err != nil {
		if apperrors.IsNotFound(err) {
			RedirectWithFlash(w, r, "/catalog/categories", missingCategoryFlash(categoryName))
			return nil, false
		}
		RenderError(w, err)
		return nil, false
	}
	item, err := h.Svc.FindInCategory(r.Context(), categoryName, itemName)
	if err != nil {
		if apperrors.IsNotFound(err) {
			RedirectWithFlash(w, r, categoryPath(categoryName), missingItemFlash(itemName, categoryName))
			return nil, false
		}
		RenderError(w, err)
		return nil, false
	}
	return item, true
}

func (h *ItemHandlers) redirectDenied(w http.ResponseWriter, r *http.Request, d domainauth.Decision, ownerFlash string) {
	if d.Reason == domainauth.DenyUnauthenticated {
		RedirectWithFlash(w, r, "/login", FlashSignInRequired)
		return
	}
	h.logger().Warn("item mutation denied", "reason", d.Reason, "path", r.URL.Path)
	RedirectWithFlash(w, r, "/catalog/myitems", ownerFlash)
}

func (h *ItemHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// formInt reads an integer form field, flashing back on bad input. An empty
// field reads as zero.
func formInt(w http.ResponseWriter, r *http.Request, field, backPath string) (int, bool) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		RedirectWithFlash(w, r, backPath, intFieldFlash(field))
		return 0, false
	}
	return n, true
}

func intFieldFlash(field string) string {
	if field == "quantity" {
		return "Quantity must be a whole number."
	}
	return "Price must be a whole number."
}

func itemPath(categoryName, itemName string) string {
	return categoryPath(categoryName) + "/" + url.PathEscape(itemName)
}
