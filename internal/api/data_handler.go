package api

import (
	"io"
	"net/http"

	"github.com/recitelabs/recite-api/internal/api/shared"
	"github.com/recitelabs/recite-api/internal/service"
)

// maxImportBytes caps import documents at 16 MiB.
const maxImportBytes = 16 << 20

// DataHandler handles whole-tree export and import.
type DataHandler struct {
	contentService *service.ContentService
}

// NewDataHandler creates a DataHandler.
func NewDataHandler(contentService *service.ContentService) *DataHandler {
	return &DataHandler{contentService: contentService}
}

// Export handles GET /data/export. The response is the full tree as a
// JSON document suitable for re-import.
func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	raw, err := h.contentService.Export(r.Context())
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="recite-export.json"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(raw); err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to write export")
	}
}

// Import handles POST /data/import. The body is a previously exported
// document; it replaces the whole tree after validation.
func (h *DataHandler) Import(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Failed to read import document")
		return
	}
	if err := h.contentService.Import(r.Context(), raw); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}
