package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"stargrid/config"

	"github.com/gin-gonic/gin"
)

func multipartUpload(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}
	writer.Close()

	return body, writer.FormDataContentType()
}

func TestUploadFile_Image(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Settings.UploadDir = t.TempDir()

	r := gin.New()
	r.POST("/api/upload", UploadFile)

	body, contentType := multipartUpload(t, "star.png", "image/png", []byte("fake-png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Host = "localhost:5000"

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("upload failed: %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success  bool   `json:"success"`
		FileURL  string `json:"fileUrl"`
		FileType string `json:"fileType"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.FileType != "image" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !strings.Contains(resp.FileURL, "/uploads/images/") {
		t.Fatalf("expected image URL under /uploads/images/, got %s", resp.FileURL)
	}
	if !strings.HasSuffix(resp.FileURL, ".png") {
		t.Fatalf("expected original extension preserved, got %s", resp.FileURL)
	}
}

func TestUploadFile_RejectsUnsupportedType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Settings.UploadDir = t.TempDir()

	r := gin.New()
	r.POST("/api/upload", UploadFile)

	body, contentType := multipartUpload(t, "notes.txt", "text/plain", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for text upload, got %d", w.Code)
	}
}

func TestUploadFile_NoFile(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/upload", UploadFile)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when no file present, got %d", w.Code)
	}
}
