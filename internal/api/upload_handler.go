package api

import (
	"net/http"

	"github.com/livefit/livefit-api/internal/api/shared"
	"github.com/livefit/livefit-api/internal/service"
)

const (
	defaultMaxImageBytes = 2 << 20

	// multipartOverhead is the slack allowed on top of the image for
	// boundaries and part headers. The image itself is limited by the
	// upload service.
	multipartOverhead = 1 << 20
)

// UploadHandler serves /api/upload.
type UploadHandler struct {
	uploads service.UploadService
	maxBody int64
}

// NewUploadHandler creates a new UploadHandler. maxImageBytes is the largest
// image the upload service accepts; zero selects the default.
func NewUploadHandler(uploads service.UploadService, maxImageBytes int64) *UploadHandler {
	if uploads == nil {
		panic("upload service cannot be nil")
	}
	if maxImageBytes <= 0 {
		maxImageBytes = defaultMaxImageBytes
	}
	return &UploadHandler{uploads: uploads, maxBody: maxImageBytes + multipartOverhead}
}

// Upload handles POST /api/upload with a single image in the "file" field.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	file, _, err := r.FormFile("file")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidFields, err)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.uploads.Upload(r.Context(), file)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, UploadResponse{ImageURL: url})
}

// List handles GET /api/upload.
func (h *UploadHandler) List(w http.ResponseWriter, r *http.Request) {
	images, err := h.uploads.ListImages(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if images == nil {
		images = []service.Image{}
	}

	shared.RespondWithData(w, r, http.StatusOK, ImageListResponse{ImageList: images})
}
