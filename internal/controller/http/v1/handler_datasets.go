package v1

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/kurochkinivan/excel_analytics/internal/config"
	"github.com/kurochkinivan/excel_analytics/internal/domain"
	"github.com/kurochkinivan/excel_analytics/internal/service"
)

type Handler struct {
	log      *slog.Logger
	datasets *service.DatasetService
	users    *service.UserService
}

func NewHandler(log *slog.Logger, datasets *service.DatasetService, users *service.UserService) *Handler {
	return &Handler{
		log:      log,
		datasets: datasets,
		users:    users,
	}
}

type uploadResponse struct {
	Message string          `json:"message"`
	Dataset *domain.Dataset `json:"dataset"`
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	// multipart framing adds overhead beyond the file cap itself
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.writeError(w, r, domain.ErrFileTooLarge)
			return
		}

		h.writeError(w, r, domain.ErrNoFile)
		return
	}
	defer file.Close()

	ds, err := h.datasets.Upload(r.Context(), user.ID, header.Filename, header.Size, file)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{
		Message: "Upload successful",
		Dataset: ds,
	})
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	datasets, err := h.datasets.History(r.Context(), user.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, datasets)
}

func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if err := h.datasets.ClearHistory(r.Context(), user.ID); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "User history cleared"})
}

func (h *Handler) Rows(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	id, err := datasetID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	page, limit := parsePagination(r)

	rowPage, err := h.datasets.Rows(r.Context(), user.ID, id, page, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rowPage)
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	id, err := datasetID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	summary, err := h.datasets.Summary(r.Context(), user.ID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{Summary: summary})
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	id, err := datasetID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	pdf, err := h.datasets.Report(r.Context(), user.ID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="report.pdf"`)
	w.Write(pdf)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	id, err := datasetID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.datasets.Delete(r.Context(), user.ID, id); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Dataset deleted successfully"})
}

// datasetID treats an unparseable id the same as an unknown one.
func datasetID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, domain.ErrDatasetNotFound
	}

	return id, nil
}
