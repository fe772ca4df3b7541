package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/gen2brain/go-fitz"
	pdflib "github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Scanned images are not accepted: OCR is out of scope.
var supportedFormats = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
}

// IsSupportedFile reports whether a bid file with this name can be turned into text.
func IsSupportedFile(fileName string) bool {
	_, ok := supportedFormats[strings.ToLower(filepath.Ext(fileName))]
	return ok
}

// ContentTypeFor returns the MIME type recorded for a supported file.
func ContentTypeFor(fileName string) string {
	return supportedFormats[strings.ToLower(filepath.Ext(fileName))]
}

type ExtractionService struct {
	logger *zap.Logger
}

func NewExtractionService(logger *zap.Logger) *ExtractionService {
	return &ExtractionService{logger: logger}
}

// ExtractText reads the text layer of a PDF, DOCX or plain-text bid file.
func (s *ExtractionService) ExtractText(ctx context.Context, filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	var (
		text   string
		method string
		err    error
	)
	switch ext {
	case ".pdf":
		method = "go-fitz"
		text, err = s.extractTextFromPDF(filePath)
		if err != nil {
			s.logger.Warn("go-fitz extraction failed, falling back to pure-Go reader",
				zap.String("file", filePath),
				zap.Error(err),
			)
			method = "ledongthuc/pdf"
			text, err = extractPDFPlainText(filePath)
		}
	case ".docx":
		method = "go-docx"
		text, err = extractDOCXText(filePath)
	case ".txt", ".md", ".csv":
		method = "plain"
		var raw []byte
		raw, err = os.ReadFile(filePath)
		text = string(raw)
	default:
		return "", fmt.Errorf("%w: %s (supported: pdf, docx, txt, md, csv)", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %s: %w", ext, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)

	s.logger.Info("Text extraction completed",
		zap.String("file", filePath),
		zap.String("method", method),
		zap.Int("text_length", len(text)),
	)

	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

func (s *ExtractionService) extractTextFromPDF(pdfPath string) (string, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var b strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			s.logger.Warn("Failed to extract text from page",
				zap.Int("page", i+1),
				zap.String("file", pdfPath),
				zap.Error(err),
			)
			continue
		}
		if i > 0 {
			b.WriteString("\f")
		}
		b.WriteString(pageText)
	}

	return b.String(), nil
}

// extractPDFPlainText pages are separated by form feeds, which the preprocessor turns into blank lines.
func extractPDFPlainText(pdfPath string) (string, error) {
	f, reader, err := pdflib.Open(pdfPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			b.WriteString("\f")
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

func extractDOCXText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}

	paragraphs := make([]string, 0, len(doc.Document.Body.Items))
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if text := docxParagraphText(para); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	return strings.Join(paragraphs, "\n\n"), nil
}

func docxParagraphText(para *docx.Paragraph) string {
	var b strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				b.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(b.String())
}
