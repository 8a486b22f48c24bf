package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/you-humble/sewing-inventory/internal/converter"
	"github.com/you-humble/sewing-inventory/internal/model"
	partv1 "github.com/you-humble/sewing-inventory/pkg/api/part/v1"
	"github.com/you-humble/sewing-inventory/platform/logger"
)

const (
	SearchStageHeader = "X-Search-Stage"

	maxBodyBytes   = 10 << 20
	exportFilename = "parts-export.json"
)

type InventoryService interface {
	Create(ctx context.Context, draft model.PartDraft) (*model.Part, error)
	Part(ctx context.Context, partID string) (*model.Part, error)
	PartByNumber(ctx context.Context, partNumber string) (*model.Part, error)
	Update(ctx context.Context, partID string, patch model.PartPatch) (*model.Part, error)
	Delete(ctx context.Context, partID string) error
	List(ctx context.Context, page model.PageRequest) (*model.PartsPage, error)
	Export(ctx context.Context) ([]*model.Part, error)
	Search(ctx context.Context, q string) (*model.SearchResult, error)
	Summary(ctx context.Context) (*model.Summary, error)
	Import(ctx context.Context, items []model.ImportItem) (*model.ImportReport, error)
}

type handler struct {
	svc InventoryService
}

func NewPartHandler(service InventoryService) *handler {
	return &handler{svc: service}
}

// Routes is mounted under /api/parts. Static segments are registered before
// /{id} so that chi never treats them as ids.
func (h *handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListParts)
	r.Post("/", h.CreatePart)
	r.Get("/search", h.SearchParts)
	r.Get("/export", h.ExportParts)
	r.Get("/stats/summary", h.Summary)
	r.Post("/bulk-import", h.BulkImport)
	r.Get("/by-number/{partNumber}", h.GetPartByNumber)
	r.Get("/{id}", h.GetPart)
	r.Put("/{id}", h.UpdatePart)
	r.Delete("/{id}", h.DeletePart)

	return r
}

func (h *handler) ListParts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	size := q.Get("limit")
	if size == "" {
		size = q.Get("pageSize")
	}

	page, err := h.svc.List(r.Context(), model.PageRequest{
		Page:     atoiOrZero(q.Get("page")),
		PageSize: atoiOrZero(size),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.PartsPageFromModel(page))
}

func (h *handler) SearchParts(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set(SearchStageHeader, res.Stage.String())
	writeJSON(w, r, http.StatusOK, converter.SearchResultFromModel(res))
}

func (h *handler) ExportParts(w http.ResponseWriter, r *http.Request) {
	parts, err := h.svc.Export(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename))
	writeJSON(w, r, http.StatusOK, converter.PartsFromModel(parts))
}

func (h *handler) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.SummaryFromModel(sum))
}

func (h *handler) GetPart(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Part(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.PartFromModel(p))
}

func (h *handler) GetPartByNumber(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.PartByNumber(r.Context(), chi.URLParam(r, "partNumber"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.PartFromModel(p))
}

func (h *handler) CreatePart(w http.ResponseWriter, r *http.Request) {
	var req partv1.PartRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	draft, err := converter.PartDraftFromRequest(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.svc.Create(r.Context(), draft)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, converter.PartFromModel(p))
}

func (h *handler) UpdatePart(w http.ResponseWriter, r *http.Request) {
	var req partv1.UpdatePartRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), converter.PartPatchFromRequest(req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.PartFromModel(p))
}

func (h *handler) DeletePart(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, partv1.Message{Message: "Part deleted successfully"})
}

// BulkImport decodes every array element on its own, so one malformed element
// is reported as a failed item instead of rejecting the whole batch.
func (h *handler) BulkImport(w http.ResponseWriter, r *http.Request) {
	var raw []json.RawMessage
	if err := decodeBody(w, r, &raw); err != nil {
		writeError(w, r, errors.Join(model.ErrValidation, errors.New("invalid import data format")))
		return
	}

	items := make([]model.ImportItem, 0, len(raw))
	for _, elem := range raw {
		items = append(items, decodeImportItem(elem))
	}

	report, err := h.svc.Import(r.Context(), items)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.ImportReportFromModel(report))
}

func decodeImportItem(elem json.RawMessage) model.ImportItem {
	var req partv1.PartRequest
	if err := json.Unmarshal(elem, &req); err != nil {
		// Best effort to keep the part number for the report.
		var key struct {
			PartNumber string `json:"partNumber"`
		}
		_ = json.Unmarshal(elem, &key)

		return model.ImportItem{
			Draft: model.PartDraft{PartNumber: key.PartNumber},
			Err:   errors.Join(model.ErrValidation, fmt.Errorf("malformed item: %w", err)),
		}
	}

	draft, err := converter.PartDraftFromRequest(req)
	return model.ImportItem{Draft: draft, Err: err}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Join(model.ErrValidation, fmt.Errorf("invalid request body: %w", err))
	}
	return nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(r.Context(), "write response", logger.ErrorF(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := mapError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.Int("status", status),
			logger.ErrorF(err),
		)
	}

	writeJSON(w, r, status, partv1.Message{Message: msg})
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest, model.Message(err) // 400
	case errors.Is(err, model.ErrPartNotFound):
		return http.StatusNotFound, "Part not found" // 404
	case errors.Is(err, model.ErrDuplicateKey):
		return http.StatusConflict, "Part number already exists" // 409
	case errors.Is(err, model.ErrPersistence),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "Storage is unavailable" // 503
	default:
		return http.StatusInternalServerError, "Internal server error" // 500
	}
}
