package uploads

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	pkgerrors "github.com/Rehan-4778/JobHunt-BE/pkg/errors"
)

// Uploader stores an object and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error)
}

// File is a validated multipart upload ready to be stored.
type File struct {
	Name        string
	ContentType string
	Reader      multipart.File
	Size        int64
}

func (f *File) Close() error {
	if f == nil || f.Reader == nil {
		return nil
	}
	return f.Reader.Close()
}

var cvExtensions = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

var cvMIMETypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

// CVFile extracts the CV upload from a multipart request. A missing field
// returns (nil, nil); callers decide whether the CV is mandatory. The declared
// content type is checked first with the file extension as fallback for
// clients that send application/octet-stream.
func CVFile(r *http.Request, field string, maxBytes int64) (*File, error) {
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "file exceeds the maximum allowed size")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read uploaded file")
	}

	if header.Size > maxBytes {
		file.Close()
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file exceeds the maximum allowed size")
	}

	contentType, err := cvContentType(header)
	if err != nil {
		file.Close()
		return nil, err
	}

	return &File{
		Name:        header.Filename,
		ContentType: contentType,
		Reader:      file,
		Size:        header.Size,
	}, nil
}

func cvContentType(header *multipart.FileHeader) (string, error) {
	declared := strings.TrimSpace(header.Header.Get("Content-Type"))
	if declared != "" && declared != "application/octet-stream" {
		if base, _, found := strings.Cut(declared, ";"); found {
			declared = strings.TrimSpace(base)
		}
		if _, ok := cvMIMETypes[strings.ToLower(declared)]; ok {
			return strings.ToLower(declared), nil
		}
		return "", pkgerrors.New(pkgerrors.CodeValidation, "CV must be a PDF or Word document")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if mapped, ok := cvExtensions[ext]; ok {
		return mapped, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "CV must be a PDF or Word document")
}
