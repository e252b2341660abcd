// Package files holds uploaded files in memory between form posts.
package files

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// MaxFileSize caps a single uploaded image
const MaxFileSize = 10 << 20

// File is an uploaded file held in memory
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// FromHeader reads a multipart file part into memory
func FromHeader(fh *multipart.FileHeader) (File, error) {
	if fh.Size > MaxFileSize {
		return File{}, fmt.Errorf("file %s exceeds %d bytes", fh.Filename, MaxFileSize)
	}
	f, err := fh.Open()
	if err != nil {
		return File{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return File{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	if len(data) > MaxFileSize {
		return File{}, fmt.Errorf("file %s exceeds %d bytes", fh.Filename, MaxFileSize)
	}

	ctype := fh.Header.Get("Content-Type")
	if ctype == "" || ctype == "application/octet-stream" {
		ctype = http.DetectContentType(data)
	}
	return File{Name: fh.Filename, ContentType: ctype, Data: data}, nil
}

// FromForm reads every file posted under field, in order
func FromForm(form *multipart.Form, field string) ([]File, error) {
	if form == nil {
		return nil, nil
	}
	headers := form.File[field]
	out := make([]File, 0, len(headers))
	for _, fh := range headers {
		f, err := FromHeader(fh)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
