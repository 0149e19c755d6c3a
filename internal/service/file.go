package service

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/KehaoC/GF/internal/model"
	"github.com/KehaoC/GF/internal/storage"
)

var (
	ErrFileNotFound  = errors.New("file not found")
	ErrInvalidBase64 = errors.New("invalid base64 data")
	ErrNoBase64Data  = errors.New("no base64 data provided")
)

// BlobStore is the file-storage surface the file service needs.
type BlobStore interface {
	Put(name string, data []byte) error
	Get(name string) ([]byte, error)
	Delete(name string) error
}

// FileService handles uploaded image assets. Stored names are random
// 128-bit identifiers; possessing a name is what grants read access.
type FileService struct {
	store       BlobStore
	maxSize     int64
	allowedExts []string
	urlPrefix   string
}

// NewFileService creates a new FileService. urlPrefix is prepended to stored
// filenames when building download URLs.
func NewFileService(store BlobStore, maxSize int64, allowedExts []string, urlPrefix string) *FileService {
	return &FileService{
		store:       store,
		maxSize:     maxSize,
		allowedExts: allowedExts,
		urlPrefix:   urlPrefix,
	}
}

func (s *FileService) errFileTypeNotAllowed() error {
	return validationErrorf("file type not allowed, allowed types: %s", strings.Join(s.allowedExts, ", "))
}

func (s *FileService) errFileTooLarge() error {
	return validationErrorf("file too large, maximum size: %dMB", s.maxSize/(1024*1024))
}

// Upload validates and stores raw file content under a fresh unguessable
// name and returns its download location.
func (s *FileService) Upload(filename string, content []byte) (model.UploadResponse, error) {
	if !s.isAllowed(filename) {
		return model.UploadResponse{}, s.errFileTypeNotAllowed()
	}
	if int64(len(content)) > s.maxSize {
		return model.UploadResponse{}, s.errFileTooLarge()
	}

	name := uniqueFilename(filename)
	if err := s.store.Put(name, content); err != nil {
		return model.UploadResponse{}, err
	}

	return model.UploadResponse{
		Filename: name,
		URL:      s.urlPrefix + "/" + name,
		Size:     len(content),
	}, nil
}

// UploadBase64 decodes a base64 payload (optionally a data URL) and stores
// it like Upload.
func (s *FileService) UploadBase64(req model.UploadBase64Request) (model.UploadResponse, error) {
	if req.Base64 == "" {
		return model.UploadResponse{}, ErrNoBase64Data
	}

	filename := req.Filename
	if filename == "" {
		filename = "image.png"
	}

	payload := req.Base64
	if strings.HasPrefix(payload, "data:") {
		// data:image/png;base64,<content> — the mime type names the extension.
		header, content, found := strings.Cut(payload, ",")
		if found {
			payload = content
			if ext := extFromDataHeader(header); ext != "" {
				filename = "image." + ext
			}
		}
	}

	if !s.isAllowed(filename) {
		return model.UploadResponse{}, s.errFileTypeNotAllowed()
	}

	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return model.UploadResponse{}, ErrInvalidBase64
	}

	if int64(len(content)) > s.maxSize {
		return model.UploadResponse{}, s.errFileTooLarge()
	}

	name := uniqueFilename(filename)
	if err := s.store.Put(name, content); err != nil {
		return model.UploadResponse{}, err
	}

	return model.UploadResponse{
		Filename: name,
		URL:      s.urlPrefix + "/" + name,
		Size:     len(content),
	}, nil
}

// Get returns the stored bytes for a filename. No ownership check: files are
// readable by anyone who knows the generated name.
func (s *FileService) Get(filename string) ([]byte, error) {
	data, err := s.store.Get(filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return data, nil
}

// Delete removes a stored file by name.
func (s *FileService) Delete(filename string) error {
	if err := s.store.Delete(filename); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrFileNotFound
		}
		return err
	}
	return nil
}

func (s *FileService) isAllowed(filename string) bool {
	ext := fileExtension(filename)
	for _, allowed := range s.allowedExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

// fileExtension returns the lowercase extension without the leading dot.
func fileExtension(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

// uniqueFilename generates "<32 hex chars>.<ext>" from a fresh UUID.
func uniqueFilename(original string) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	if ext := fileExtension(original); ext != "" {
		return id + "." + ext
	}
	return id
}

// extFromDataHeader extracts the extension from a data-URL header such as
// "data:image/png;base64". JPEG is normalized to "jpg".
func extFromDataHeader(header string) string {
	_, mime, found := strings.Cut(header, ":")
	if !found {
		return ""
	}
	mime, _, _ = strings.Cut(mime, ";")
	_, ext, found := strings.Cut(mime, "/")
	if !found {
		return ""
	}
	if ext == "jpeg" {
		ext = "jpg"
	}
	return ext
}
