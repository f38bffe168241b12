package api

import (
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"time"

	"wardrobe/internal/backup"
	"wardrobe/internal/catalog"
	"wardrobe/internal/store"
)

// maxImportSize limits import uploads; image data URLs make backups
// large but 50 MB covers a full catalog comfortably.
const maxImportSize = 50 << 20

// BackupHandler handles export and import endpoints.
type BackupHandler struct {
	DB      *sql.DB
	Catalog *catalog.Catalog
}

// Export handles GET /api/backup/export. The response carries the
// timestamped download name and the export is recorded as the last
// backup.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	doc := backup.Export(h.Catalog.Items(), now)

	if err := backup.RecordBackup(r.Context(), h.DB, now); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to record backup time")
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+backup.FileName(now)+`"`)
	jsonResponse(w, http.StatusOK, doc)
}

// Import handles POST /api/backup/import?mode=replace|merge. The body
// is the backup document itself. Validation failures leave storage
// untouched.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "replace"
	}
	if mode != "replace" && mode != "merge" {
		jsonError(w, http.StatusBadRequest, "mode must be 'replace' or 'merge'")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "failed to read import file")
		return
	}

	doc, err := backup.Parse(data)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	items := backup.Normalize(doc.Items, time.Now())

	switch mode {
	case "replace":
		count, err := backup.ImportReplace(r.Context(), h.DB, items)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "import failed")
			return
		}
		if err := h.Catalog.Reload(r.Context()); err != nil {
			jsonError(w, http.StatusInternalServerError, "import succeeded but reload failed")
			return
		}
		jsonResponse(w, http.StatusOK, map[string]any{"mode": mode, "count": count})

	case "merge":
		res, err := backup.ImportMerge(r.Context(), h.DB, items)
		if err != nil {
			// Merge is not atomic: earlier items stay applied, so the
			// in-memory list still needs to catch up with them.
			if rerr := h.Catalog.Reload(r.Context()); rerr != nil {
				slog.Error("reloading catalog after failed merge import", "error", rerr)
			}
			jsonError(w, http.StatusInternalServerError, "import failed partway through")
			return
		}
		if err := h.Catalog.Reload(r.Context()); err != nil {
			jsonError(w, http.StatusInternalServerError, "import succeeded but reload failed")
			return
		}
		jsonResponse(w, http.StatusOK, map[string]any{
			"mode": mode, "added": res.Added, "updated": res.Updated,
		})
	}
}

// Status handles GET /api/backup/status.
func (h *BackupHandler) Status(w http.ResponseWriter, r *http.Request) {
	last, err := store.GetSetting(r.Context(), h.DB, store.SettingLastBackup)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to read backup status")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"lastBackupTime": last,
		"remindBackup":   backup.ShouldRemind(last, time.Now()),
	})
}
