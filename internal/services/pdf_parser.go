package services

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"alfredoptarigan/job-tracker/internal/models"
)

// PDFParserService turns base64 encoded PDFs, as sent by the browser file
// pickers, into plain text.
type PDFParserService interface {
	ExtractText(encoded string) (string, error)
	ExtractTextWithMetaData(encoded string) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
	Size      int
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

func (p *pdfParserService) ExtractText(encoded string) (string, error) {
	content, err := p.ExtractTextWithMetaData(encoded)
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

func (p *pdfParserService) ExtractTextWithMetaData(encoded string) (content *PDFContent, err error) {
	data, err := DecodeDocument(encoded)
	if err != nil {
		return nil, err
	}

	// The pdf package panics on some malformed object streams.
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = &models.ExtractionError{Reason: "corrupt PDF", Err: fmt.Errorf("%v", r)}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &models.ExtractionError{Reason: "failed to open PDF", Err: err}
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if textBuilder.Len() > 0 {
			textBuilder.WriteString("\n\n")
		}
		textBuilder.WriteString(text)
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return nil, &models.ExtractionError{Reason: "no text content found in PDF"}
	}

	return &PDFContent{
		Text:      text,
		PageCount: totalPage,
		Size:      len(data),
	}, nil
}

// DecodeDocument accepts either raw base64 or a data URL
// ("data:application/pdf;base64,....") and returns the decoded bytes.
func DecodeDocument(encoded string) ([]byte, error) {
	payload := strings.TrimSpace(encoded)
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return nil, &models.ExtractionError{Reason: "malformed data URL"}
		}
		payload = payload[idx+1:]
	}

	if payload == "" {
		return nil, &models.ExtractionError{Reason: "empty document"}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, &models.ExtractionError{Reason: "invalid base64 payload", Err: err}
	}
	if len(data) == 0 {
		return nil, &models.ExtractionError{Reason: "empty document"}
	}

	return data, nil
}

// EncodeDocument is the inverse of DecodeDocument and always produces a data URL.
func EncodeDocument(data []byte) string {
	return "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(data)
}

// IsExtractionError reports whether err came from document extraction.
func IsExtractionError(err error) bool {
	var extractionErr *models.ExtractionError
	return errors.As(err, &extractionErr)
}
