package model

// UploadResponse represents a successful file upload.
type UploadResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int    `json:"size"`
}

// UploadBase64Request represents a base64 image upload. The payload may be a
// data URL ("data:image/png;base64,...") or a bare base64 string.
type UploadBase64Request struct {
	Base64   string `json:"base64"`
	Filename string `json:"filename"`
}
