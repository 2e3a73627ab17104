package uploads

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	pkgerrors "github.com/Rehan-4778/JobHunt-BE/pkg/errors"
)

func multipartRequest(t *testing.T, field, filename, contentType string, payload []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestCVFileAcceptsPDF(t *testing.T) {
	req := multipartRequest(t, "cv", "resume.pdf", "application/pdf", []byte("%PDF-1.4"))
	file, err := CVFile(req, "cv", 1<<20)
	if err != nil {
		t.Fatalf("cv file: %v", err)
	}
	defer file.Close()
	if file.ContentType != "application/pdf" || file.Name != "resume.pdf" {
		t.Fatalf("unexpected file %+v", file)
	}
}

func TestCVFileFallsBackToExtension(t *testing.T) {
	req := multipartRequest(t, "cv", "resume.docx", "application/octet-stream", []byte("PK"))
	file, err := CVFile(req, "cv", 1<<20)
	if err != nil {
		t.Fatalf("cv file: %v", err)
	}
	defer file.Close()
	if file.ContentType != "application/vnd.openxmlformats-officedocument.wordprocessingml.document" {
		t.Fatalf("unexpected content type %q", file.ContentType)
	}
}

func TestCVFileRejectsOtherTypes(t *testing.T) {
	req := multipartRequest(t, "cv", "resume.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
	_, err := CVFile(req, "cv", 1<<20)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	req = multipartRequest(t, "cv", "resume.exe", "application/octet-stream", []byte("MZ"))
	if _, err := CVFile(req, "cv", 1<<20); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for unknown extension, got %v", err)
	}
}

func TestCVFileMissingFieldIsNil(t *testing.T) {
	req := multipartRequest(t, "other", "x.pdf", "application/pdf", []byte("%PDF"))
	file, err := CVFile(req, "cv", 1<<20)
	if err != nil {
		t.Fatalf("cv file: %v", err)
	}
	if file != nil {
		t.Fatal("expected nil for missing field")
	}
}

func TestCVFileRejectsOversize(t *testing.T) {
	payload := bytes.Repeat([]byte("a"), 2048)
	req := multipartRequest(t, "cv", "resume.pdf", "application/pdf", payload)
	_, err := CVFile(req, "cv", 1024)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
