package handler

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/KehaoC/GF/internal/model"
	"github.com/KehaoC/GF/internal/service"
)

// FileHandler handles HTTP requests for file upload and retrieval.
type FileHandler struct {
	service *service.FileService
	maxSize int64
}

// NewFileHandler creates a new FileHandler. maxSize bounds the accepted
// request body.
func NewFileHandler(svc *service.FileService, maxSize int64) *FileHandler {
	return &FileHandler{service: svc, maxSize: maxSize}
}

// HandleUpload handles POST /api/v1/files/upload multipart requests.
func (h *FileHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	// Headroom for multipart framing on top of the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("missing file field"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("could not read file"))
		return
	}

	resp, err := h.service.Upload(header.Filename, content)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUploadBase64 handles POST /api/v1/files/upload-base64 requests.
func (h *FileHandler) HandleUploadBase64(w http.ResponseWriter, r *http.Request) {
	var req model.UploadBase64Request
	// Base64 inflates content by a third; allow for it.
	if !decodeJSON(w, r, h.maxSize*4/3+1<<20, &req) {
		return
	}

	resp, err := h.service.UploadBase64(req)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /api/v1/files/{filename} requests. Reads are
// unauthenticated: knowing the generated name grants access.
func (h *FileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	content, err := h.service.Get(filename)
	if err != nil {
		serviceError(w, err)
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

// HandleDelete handles DELETE /api/v1/files/{filename} requests. Requires an
// authenticated active user but performs no ownership check: any signed-in
// caller who knows a name can delete that file. This mirrors how the flat
// upload namespace has always behaved and is a documented limitation.
func (h *FileHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	if err := h.service.Delete(filename); err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "file deleted successfully"})
}
