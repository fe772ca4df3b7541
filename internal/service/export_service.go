package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"bid-leveler/internal/dto"
	"bid-leveler/internal/models"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"

	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

var levelingHeader = []string{"Rank", "Contractor", "Total Cost (as quoted)", "Amount", "Delta From Low", "% Above Low"}

// Report is a rendered export ready to be sent to the client.
type Report struct {
	FileName    string
	ContentType string
	Data        []byte
}

// LatestComparisonSource is satisfied by ComparisonService.
type LatestComparisonSource interface {
	Latest(ctx context.Context, ownerID, projectID uuid.UUID) (*models.Project, *dto.ComparisonResponse, error)
}

type ExportService struct {
	comparisons LatestComparisonSource
	logger      *zap.Logger
}

func NewExportService(comparisons LatestComparisonSource, logger *zap.Logger) *ExportService {
	return &ExportService{
		comparisons: comparisons,
		logger:      logger,
	}
}

// Export renders the latest comparison of the project and its leveling table.
func (s *ExportService) Export(ctx context.Context, ownerID, projectID uuid.UUID, format string) (*Report, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatXLSX
	}
	if format != FormatXLSX && format != FormatPDF {
		return nil, fmt.Errorf("%w: export format %q", ErrUnsupportedFormat, format)
	}

	project, comparison, err := s.comparisons.Latest(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case FormatPDF:
		data, err = RenderPDF(project, comparison)
	default:
		data, err = RenderXLSX(project, comparison)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Comparison exported",
		zap.String("project_id", projectID.String()),
		zap.String("format", format),
		zap.Int("bytes", len(data)),
	)

	report := &Report{
		FileName:    reportFileName(project.Name, format),
		ContentType: contentTypeXLSX,
		Data:        data,
	}
	if format == FormatPDF {
		report.ContentType = contentTypePDF
	}
	return report, nil
}

// RenderXLSX builds a workbook with a "Leveling" sheet and an "Analysis" sheet.
func RenderXLSX(project *models.Project, c *dto.ComparisonResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const leveling, analysis = "Leveling", "Analysis"
	if err := f.SetSheetName("Sheet1", leveling); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(analysis); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	for i, h := range levelingHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(leveling, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(levelingHeader), 1)
	if err := f.SetCellStyle(leveling, "A1", lastHeader, bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for r, e := range c.Leveling {
		for col, v := range levelingRow(e) {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			if err := f.SetCellValue(leveling, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write leveling row: %w", err)
			}
		}
	}
	_ = f.SetColWidth(leveling, "B", "C", 32)
	_ = f.SetColWidth(leveling, "D", "F", 16)

	rows := [][2]string{
		{"Project", project.Name},
		{"Location", project.Location},
		{"Model", c.Model},
		{"Created", c.CreatedAt},
		{"Bids", fmt.Sprint(c.BidCount)},
		{"Prompt tokens", fmt.Sprint(c.PromptTokens)},
		{"Completion tokens", fmt.Sprint(c.CompletionTokens)},
		{"Analysis", c.Analysis},
	}
	for i, row := range rows {
		if err := f.SetCellValue(analysis, fmt.Sprintf("A%d", i+1), row[0]); err != nil {
			return nil, fmt.Errorf("failed to write analysis: %w", err)
		}
		if err := f.SetCellValue(analysis, fmt.Sprintf("B%d", i+1), row[1]); err != nil {
			return nil, fmt.Errorf("failed to write analysis: %w", err)
		}
	}
	_ = f.SetCellStyle(analysis, "A1", fmt.Sprintf("A%d", len(rows)), bold)
	_ = f.SetColWidth(analysis, "A", "A", 20)
	_ = f.SetColWidth(analysis, "B", "B", 100)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPDF builds a one-document report: leveling table first, then the analysis text.
func RenderPDF(project *models.Project, c *dto.ComparisonResponse) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Bid leveling: "+project.Name, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr("Bid leveling: "+project.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Model %s, %s, %d bids", c.Model, c.CreatedAt, c.BidCount)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{12, 52, 46, 28, 28, 24}
	pdf.SetFont("Arial", "B", 9)
	for i, h := range levelingHeader {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, e := range c.Leveling {
		for i, v := range levelingRow(e) {
			pdf.CellFormat(widths[i], 6, tr(fmt.Sprint(v)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Analysis", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, tr(c.Analysis), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func levelingRow(e dto.LevelingEntry) []any {
	rank := "-"
	if e.Rank > 0 {
		rank = fmt.Sprint(e.Rank)
	}
	percent := ""
	if e.Rank > 0 {
		percent = fmt.Sprintf("%.1f", e.PercentAbove)
	}
	return []any{rank, e.Contractor, e.TotalCost, e.Amount, e.DeltaFromLow, percent}
}

func reportFileName(projectName, format string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, projectName)
	if name == "" {
		name = "project"
	}
	return fmt.Sprintf("%s_leveling.%s", name, format)
}
