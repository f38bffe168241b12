package api

import (
	"database/sql"
	"net/http"

	"wardrobe/internal/catalog"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, cat *catalog.Catalog) http.Handler {
	mux := http.NewServeMux()

	clothesHandler := &ClothesHandler{Catalog: cat}
	backupHandler := &BackupHandler{DB: db, Catalog: cat}
	statsHandler := &StatsHandler{Catalog: cat}
	settingsHandler := &SettingsHandler{DB: db}
	imagesHandler := &ImagesHandler{}

	// Clothes. Fixed paths are registered before the {id} wildcard.
	mux.HandleFunc("GET /api/clothes", clothesHandler.List)
	mux.HandleFunc("POST /api/clothes", clothesHandler.Create)
	mux.HandleFunc("POST /api/clothes/bulk-delete", clothesHandler.BulkDelete)
	mux.HandleFunc("POST /api/clothes/clear", clothesHandler.Clear)
	mux.HandleFunc("POST /api/clothes/reset", clothesHandler.Reset)
	mux.HandleFunc("GET /api/clothes/{id}", clothesHandler.Get)
	mux.HandleFunc("PATCH /api/clothes/{id}", clothesHandler.Update)
	mux.HandleFunc("DELETE /api/clothes/{id}", clothesHandler.Delete)
	mux.HandleFunc("POST /api/clothes/{id}/favorite", clothesHandler.ToggleFavorite)
	mux.HandleFunc("POST /api/clothes/{id}/wash", clothesHandler.ToggleNeedsWash)

	// Statistics.
	mux.HandleFunc("GET /api/stats", statsHandler.Get)

	// Backup.
	mux.HandleFunc("GET /api/backup/export", backupHandler.Export)
	mux.HandleFunc("POST /api/backup/import", backupHandler.Import)
	mux.HandleFunc("GET /api/backup/status", backupHandler.Status)

	// Image processing.
	mux.HandleFunc("POST /api/images", imagesHandler.Process)

	// Preferences.
	mux.HandleFunc("GET /api/settings", settingsHandler.Get)
	mux.HandleFunc("PUT /api/settings", settingsHandler.Update)

	return mux
}
