package ingest

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const templateSheet = "Stones"

// TemplateHeaders 导入模板表头，每一列都能被 DefaultAliases 精确命中
var TemplateHeaders = []string{
	"Stone ID", "Lab", "Shape", "Carat", "Color", "Clarity", "Cut",
	"Length", "Width", "Height", "Total Amount", "Photo Link",
}

// WriteTemplate 生成空白导入模板
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return err
	}
	headers := make([]interface{}, len(TemplateHeaders))
	for i, h := range TemplateHeaders {
		headers[i] = h
	}
	if err := f.SetSheetRow(templateSheet, "A1", &headers); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E7EEF7"}},
	})
	if err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(TemplateHeaders))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(templateSheet, "A1", lastCol+"1", style); err != nil {
		return err
	}
	if err := f.SetColWidth(templateSheet, "A", lastCol, 14); err != nil {
		return err
	}
	if err := f.SetPanes(templateSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	return f.Write(w)
}
