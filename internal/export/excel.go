// Package export renders normalized run results into the XLSX workbook and
// the JSON document.
package export

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/kapu/nftnyc-speaker-scraper/internal/constants"
	"github.com/kapu/nftnyc-speaker-scraper/internal/domain"
	scraperrors "github.com/kapu/nftnyc-speaker-scraper/pkg/errors"
)

// Rendered column order. LinkedIn deliberately precedes Instagram here even
// though the record lists them the other way around.
var excelColumns = []string{"Name", "Title/Tag", "Image URL", "X Handle", "LinkedIn", "Instagram"}

// footerTimeLayout matches "August 23, 2026 at 2:05 PM".
const footerTimeLayout = "January 2, 2006 at 3:04 PM"

// ExcelExporter writes one formatted sheet per non-empty track.
type ExcelExporter struct {
	logger *zap.Logger
}

func NewExcelExporter(logger *zap.Logger) *ExcelExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExcelExporter{logger: logger}
}

// sheetStyles caches the style IDs registered on one workbook.
type sheetStyles struct {
	header      int
	normal      int
	normalZebra int
	absent      int
	absentZebra int
	footer      int
}

// Write renders result into an XLSX workbook at path.
func (e *ExcelExporter) Write(result domain.RunResult, path string) error {
	if len(result.Tracks) == 0 {
		return scraperrors.NewExportError(path, errors.New("no data to export"))
	}

	f := excelize.NewFile()
	defer f.Close()

	styles, err := registerStyles(f)
	if err != nil {
		return scraperrors.NewExportError(path, err)
	}

	used := make(map[string]bool)
	for i, tr := range result.Tracks {
		sheet := SanitizeSheetName(tr.Track.Name, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return scraperrors.NewExportError(path, err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return scraperrors.NewExportError(path, err)
			}
		}
		if err := e.writeSheet(f, styles, sheet, tr, result); err != nil {
			return scraperrors.NewExportError(path, err)
		}
		e.logger.Info("Formatted sheet",
			zap.String("sheet", sheet),
			zap.Int("speakers", len(tr.Speakers)),
			zap.String("first", tr.Speakers[0].Name))
	}

	if err := f.SaveAs(path); err != nil {
		return scraperrors.NewExportError(path, err)
	}
	return nil
}

func (e *ExcelExporter) writeSheet(f *excelize.File, styles sheetStyles, sheet string, tr domain.TrackResult, result domain.RunResult) error {
	widths := make([]int, len(excelColumns))

	for col, header := range excelColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, styles.header); err != nil {
			return err
		}
		widths[col] = utf8.RuneCountInString(header)
	}

	for r, sp := range tr.Speakers {
		row := r + 2
		zebra := row%2 == 0
		values := []string{sp.Name, sp.Tag, sp.ImageURL, sp.XHandle, sp.LinkedIn, sp.Instagram}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, cellStyle(styles, value, zebra)); err != nil {
				return err
			}
			if n := utf8.RuneCountInString(value); n > widths[col] {
				widths[col] = n
			}
		}
	}

	for col := range excelColumns {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		width := float64(widths[col] + 2)
		if width > constants.ExcelStyle.MaxColWidth {
			width = constants.ExcelStyle.MaxColWidth
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	lastRow := len(tr.Speakers) + 1
	lastCol, err := excelize.ColumnNumberToName(len(excelColumns))
	if err != nil {
		return err
	}
	if err := f.AutoFilter(sheet, fmt.Sprintf("A1:%s%d", lastCol, lastRow), nil); err != nil {
		return err
	}

	// Two-line footer: source page and scrape time.
	sourceCell, err := excelize.CoordinatesToCellName(1, lastRow+2)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, sourceCell, fmt.Sprintf("Sourced from %s%s", result.BaseURL, tr.Track.Path)); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, sourceCell, sourceCell, styles.footer); err != nil {
		return err
	}
	timeCell, err := excelize.CoordinatesToCellName(1, lastRow+3)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, timeCell, "Scraped on "+result.ScrapedAt.Format(footerTimeLayout)); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, timeCell, timeCell, styles.footer)
}

// cellStyle picks the data-cell style: absent-sentinel cells render italic
// gray, even worksheet rows get the zebra fill.
func cellStyle(styles sheetStyles, value string, zebra bool) int {
	absent := value == domain.AbsentHandle
	switch {
	case absent && zebra:
		return styles.absentZebra
	case absent:
		return styles.absent
	case zebra:
		return styles.normalZebra
	default:
		return styles.normal
	}
}

func registerStyles(f *excelize.File) (sheetStyles, error) {
	style := constants.ExcelStyle

	borders := []excelize.Border{
		{Type: "left", Color: "000000", Style: 2},
		{Type: "right", Color: "000000", Style: 2},
		{Type: "top", Color: "000000", Style: 2},
		{Type: "bottom", Color: "000000", Style: 2},
	}
	leftAligned := &excelize.Alignment{Horizontal: "left", Vertical: "center"}
	zebraFill := excelize.Fill{Type: "pattern", Color: []string{style.ZebraFill}, Pattern: 1}

	var out sheetStyles
	var err error

	out.header, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{style.HeaderFill}, Pattern: 1},
		Font:      &excelize.Font{Family: style.FontName, Size: 11, Bold: true, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    borders,
	})
	if err != nil {
		return out, err
	}

	out.normal, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: style.FontName, Size: 11},
		Alignment: leftAligned,
		Border:    borders,
	})
	if err != nil {
		return out, err
	}

	out.normalZebra, err = f.NewStyle(&excelize.Style{
		Fill:      zebraFill,
		Font:      &excelize.Font{Family: style.FontName, Size: 11},
		Alignment: leftAligned,
		Border:    borders,
	})
	if err != nil {
		return out, err
	}

	out.absent, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: style.FontName, Size: 11, Italic: true, Color: style.AbsentColor},
		Alignment: leftAligned,
		Border:    borders,
	})
	if err != nil {
		return out, err
	}

	out.absentZebra, err = f.NewStyle(&excelize.Style{
		Fill:      zebraFill,
		Font:      &excelize.Font{Family: style.FontName, Size: 11, Italic: true, Color: style.AbsentColor},
		Alignment: leftAligned,
		Border:    borders,
	})
	if err != nil {
		return out, err
	}

	out.footer, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: style.FontName, Size: 10, Italic: true, Color: style.FooterColor},
	})
	return out, err
}

// SanitizeSheetName makes name safe for use as a worksheet name: forbidden
// characters become dashes, "&" becomes "and", the result is capped at 31
// characters (counted as runes, never splitting a multi-byte character), and
// collisions against used get a numeric suffix that still respects the cap.
// The chosen name is recorded in used.
func SanitizeSheetName(name string, used map[string]bool) string {
	if name == "" {
		name = "Sheet"
	}
	name = strings.NewReplacer(
		":", "-", "\\", "-", "/", "-", "?", "-", "*", "-", "[", "-", "]", "-",
	).Replace(name)
	name = strings.ReplaceAll(name, "&", "and")

	base := []rune(name)
	if len(base) > 31 {
		base = base[:31]
	}
	name = string(base)

	for counter := 1; used[name]; counter++ {
		suffix := fmt.Sprintf("_%d", counter)
		allowed := 31 - len(suffix)
		if len(base) > allowed {
			name = string(base[:allowed]) + suffix
		} else {
			name = string(base) + suffix
		}
	}
	used[name] = true
	return name
}
