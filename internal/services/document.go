package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"alfredoptarigan/job-tracker/internal/models"
)

// DocumentService turns an uploaded PDF into the data URL that is stored on
// application records and in resume lists.
type DocumentService interface {
	Encode(file *multipart.FileHeader) (*models.UploadResponse, error)
}

type documentService struct {
	maxFileSize int64
}

func NewDocumentService(maxFileSize int64) DocumentService {
	return &documentService{maxFileSize: maxFileSize}
}

func (s *documentService) Encode(file *multipart.FileHeader) (*models.UploadResponse, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return nil, &models.ValidationError{Field: "file", Message: fmt.Sprintf("has invalid extension %q, only .pdf is accepted", ext)}
	}

	if file.Size > s.maxFileSize {
		return nil, &models.ValidationError{Field: "file", Message: fmt.Sprintf("is too large, max size is %d bytes", s.maxFileSize)}
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, s.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, &models.ValidationError{Field: "file", Message: fmt.Sprintf("is too large, max size is %d bytes", s.maxFileSize)}
	}

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, &models.ExtractionError{Reason: "uploaded file is not a PDF"}
	}

	return &models.UploadResponse{
		Name:    filepath.Base(file.Filename),
		Content: EncodeDocument(data),
		Size:    int64(len(data)),
	}, nil
}
