package transport

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"hallever/internal/service"
)

// maxUploadMemory bounds the in-memory part of multipart parsing; larger
// files spill to disk.
const maxUploadMemory = 32 << 20

// openUploads collects the files of one multipart field as service uploads.
// The returned closer must run after the service call.
func openUploads(r *http.Request, field string) ([]service.Upload, func(), error) {
	if r.MultipartForm == nil {
		return nil, func() {}, nil
	}

	headers := r.MultipartForm.File[field]
	uploads := make([]service.Upload, 0, len(headers))
	open := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range open {
			f.Close()
		}
	}

	for _, hdr := range headers {
		f, err := hdr.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("failed to open upload %s: %w", hdr.Filename, err)
		}
		open = append(open, f)
		uploads = append(uploads, service.Upload{
			Reader:      f,
			ContentType: hdr.Header.Get("Content-Type"),
		})
	}
	return uploads, closeAll, nil
}

// decodeFormJSON unmarshals a JSON-valued form field. Absent fields leave v
// untouched and return false.
func decodeFormJSON(r *http.Request, field string, v interface{}) (bool, error) {
	raw := r.FormValue(field)
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("invalid %s field: %w", field, err)
	}
	return true, nil
}
