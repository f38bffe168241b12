package api

import (
	"fmt"
	"net/http"
	"strconv"

	"wardrobe/internal/catalog"
	"wardrobe/internal/model"
)

// ClothesHandler handles clothing item endpoints.
type ClothesHandler struct {
	Catalog *catalog.Catalog
}

// List handles GET /api/clothes. Optional filter query parameters are
// AND-combined; grouped=area or grouped=category returns the partition
// of the filtered list instead of a flat array.
func (h *ClothesHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	items := catalog.ApplyFilter(h.Catalog.Items(), filter)

	switch r.URL.Query().Get("grouped") {
	case "":
		jsonResponse(w, http.StatusOK, map[string]any{
			"items":            items,
			"hasActiveFilters": catalog.HasActiveFilters(filter),
		})
	case "area":
		jsonResponse(w, http.StatusOK, catalog.GroupByArea(items))
	case "category":
		jsonResponse(w, http.StatusOK, catalog.GroupByCategory(items))
	default:
		jsonError(w, http.StatusBadRequest, "grouped must be 'area' or 'category'")
	}
}

// Create handles POST /api/clothes.
func (h *ClothesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form model.ClothingForm
	if err := decodeJSON(r, &form); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := form.Validate(); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.Catalog.Add(r.Context(), &form)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/clothes/{id}.
func (h *ClothesHandler) Get(w http.ResponseWriter, r *http.Request) {
	item := h.Catalog.Get(r.PathValue("id"))
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"item": item,
		"area": item.ItemArea(),
	})
}

// Update handles PATCH /api/clothes/{id}. The in-memory list reflects
// the patch immediately; the durable write is debounced.
func (h *ClothesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.ClothingPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := patch.Validate(); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.Catalog.Update(r.Context(), r.PathValue("id"), &patch)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/clothes/{id}.
func (h *ClothesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.Delete(r.Context(), r.PathValue("id")); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BulkDelete handles POST /api/clothes/bulk-delete.
func (h *ClothesHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Catalog.DeleteMany(r.Context(), req.IDs); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete items")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"deleted": len(req.IDs)})
}

// ToggleFavorite handles POST /api/clothes/{id}/favorite.
func (h *ClothesHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	item, err := h.Catalog.ToggleFavorite(r.Context(), r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to toggle favorite")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// ToggleNeedsWash handles POST /api/clothes/{id}/wash.
func (h *ClothesHandler) ToggleNeedsWash(w http.ResponseWriter, r *http.Request) {
	item, err := h.Catalog.ToggleNeedsWash(r.Context(), r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to toggle wash flag")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Clear handles POST /api/clothes/clear.
func (h *ClothesHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.Clear(r.Context()); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to clear catalog")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "catalog cleared"})
}

// Reset handles POST /api/clothes/reset.
func (h *ClothesHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.ResetToSample(r.Context()); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to reset catalog")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"count": h.Catalog.Count()})
}

// filterFromQuery builds a filter from list query parameters.
func filterFromQuery(r *http.Request) (model.Filter, error) {
	q := r.URL.Query()
	f := model.Filter{
		Category: q.Get("category"),
		Season:   q.Get("season"),
		Occasion: q.Get("occasion"),
		Color:    q.Get("color"),
		Keyword:  q.Get("keyword"),
	}

	for param, target := range map[string]**bool{
		"needsWash":  &f.NeedsWash,
		"isFavorite": &f.IsFavorite,
	} {
		if v := q.Get(param); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return model.Filter{}, fmt.Errorf("%s must be true or false", param)
			}
			*target = &b
		}
	}
	return f, nil
}
