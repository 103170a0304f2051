package httpx

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/sportsbazar/catalog-api/internal/domain/auth"
	apperrors "github.com/sportsbazar/catalog-api/internal/errors"
	"github.com/sportsbazar/catalog-api/internal/service"
)

// CategoryHandlers serves the admin-only category mutations. Every route runs
// behind RequireAuth; the guard narrows access further to the administrator.
type CategoryHandlers struct {
	Svc     *service.CategoryService
	Guard   domainauth.Guard
	Metrics MutationRecorder // optional
	Logger  *slog.Logger
}

func (h *CategoryHandlers) recordMutation(action string) {
	if h.Metrics != nil {
		h.Metrics.RecordMutation("category", action)
	}
}

// Create handles POST /catalog/new.
func (h *CategoryHandlers) Create(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if d := h.Guard.Authorize(sess, domainauth.Resource{Kind: domainauth.ResourceCategory}); !d.Allowed {
		h.redirectDenied(w, r, d)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		RedirectWithFlash(w, r, "/catalog/new", "Cannot add a category without a name.")
		return
	}
	if strings.EqualFold(name, "categories") {
		RedirectWithFlash(w, r, "/catalog/new", "You cannot use that word as a category's name.")
		return
	}

	category, err := h.Svc.Create(r.Context(), name)
	if err != nil {
		switch {
		case apperrors.IsConflict(err):
			RedirectWithFlash(w, r, "/catalog/new", "Name already exists. Please enter a new name.")
		case apperrors.IsValidation(err):
			RedirectWithFlash(w, r, "/catalog/new", err.Error())
		default:
			RenderError(w, err)
		}
		return
	}
	h.recordMutation("create")
	RedirectWithFlash(w, r, "/catalog/categories",
		fmt.Sprintf("New category %q is successfully added.", category.Name))
}

// Edit handles POST /catalog/{category}/edit. The admin check runs before the
// category lookup so non-admins learn nothing about which categories exist.
func (h *CategoryHandlers) Edit(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if d := h.Guard.Authorize(sess, domainauth.Resource{Kind: domainauth.ResourceCategory}); !d.Allowed {
		h.redirectDenied(w, r, d)
		return
	}

	currentName := r.PathValue("category")
	category, err := h.Svc.GetByName(r.Context(), currentName)
	if err != nil {
		if apperrors.IsNotFound(err) {
			RedirectWithFlash(w, r, "/catalog/categories", missingCategoryFlash(currentName))
			return
		}
		RenderError(w, err)
		return
	}

	editPath := categoryPath(currentName) + "/edit"
	newName := strings.TrimSpace(r.FormValue("name"))
	switch {
	case newName == "":
		RedirectWithFlash(w, r, editPath, "You cannot set the name empty.")
		return
	case strings.EqualFold(newName, "categories"):
		RedirectWithFlash(w, r, editPath, "You cannot use that word as a category name.")
		return
	case newName == category.Name:
		RedirectWithFlash(w, r, editPath, "Please modify the name to some new value.")
		return
	}

	updated, err := h.Svc.Rename(r.Context(), category.ID, newName)
	if err != nil {
		switch {
		case apperrors.IsConflict(err):
			RedirectWithFlash(w, r, editPath, "Category name already exists. Please enter a new name.")
		case apperrors.IsValidation(err):
			RedirectWithFlash(w, r, editPath, err.Error())
		default:
			RenderError(w, err)
		}
		return
	}
	h.recordMutation("update")
	RedirectWithFlash(w, r, categoryPath(updated.Name), "Category successfully updated.")
}

// Delete handles POST /catalog/{category}/delete. Items in the category go
// with it.
func (h *CategoryHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if d := h.Guard.Authorize(sess, domainauth.Resource{Kind: domainauth.ResourceCategory}); !d.Allowed {
		h.redirectDenied(w, r, d)
		return
	}

	name := r.PathValue("category")
	category, err := h.Svc.GetByName(r.Context(), name)
	if err != nil {
		if apperrors.IsNotFound(err) {
			RedirectWithFlash(w, r, "/catalog/categories", missingCategoryFlash(name))
			return
		}
		RenderError(w, err)
		return
	}

	if _, err := h.Svc.Delete(r.Context(), category.ID); err != nil {
		RenderError(w, err)
		return
	}
	h.recordMutation("delete")
	RedirectWithFlash(w, r, "/catalog/categories",
		fmt.Sprintf("Category %q successfully deleted", category.Name))
}

func (h *CategoryHandlers) redirectDenied(w http.ResponseWriter, r *http.Request, d domainauth.Decision) {
	if d.Reason == domainauth.DenyUnauthenticated {
		RedirectWithFlash(w, r, "/login", FlashSignInRequired)
		return
	}
	h.logger().Warn("category mutation denied", "reason", d.Reason, "path", r.URL.Path)
	RedirectWithFlash(w, r, "/catalog/categories", FlashCategoryAdmins)
}

func (h *CategoryHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
