package table

import (
	slides "google.golang.org/api/slides/v1"

	"github.com/teemow/gslides/internal/color"
)

func (t *Table) createRequest(slideID string) *slides.Request {
	return &slides.Request{
		CreateTable: &slides.CreateTableRequest{
			ElementProperties: &slides.PageElementProperties{PageObjectId: slideID},
			Rows:              int64(t.Rows()),
			Columns:           int64(t.Columns()),
		},
	}
}

func (t *Table) updateRequests(id string, size Size, translateX, translateY float64) []*slides.Request {
	var requests []*slides.Request

	requests = append(requests, &slides.Request{
		UpdatePageElementTransform: &slides.UpdatePageElementTransformRequest{
			ObjectId: id,
			Transform: &slides.AffineTransform{
				ScaleX:     1,
				ScaleY:     1,
				TranslateX: translateX,
				TranslateY: translateY,
				Unit:       "EMU",
			},
			ApplyMode: "ABSOLUTE",
		},
	})

	for r, row := range t.cells {
		for c, s := range row {
			if s == "" {
				continue
			}
			requests = append(requests, &slides.Request{
				InsertText: &slides.InsertTextRequest{
					ObjectId:       id,
					CellLocation:   location(r, c),
					Text:           s,
					InsertionIndex: 0,
				},
			})
		}
	}

	for r, row := range t.cells {
		for c := range row {
			requests = append(requests, t.textStyle(id, r, c))
		}
	}

	requests = append(requests, t.cellProperties(id)...)

	for r, row := range t.cells {
		for c := range row {
			requests = append(requests, &slides.Request{
				UpdateParagraphStyle: &slides.UpdateParagraphStyleRequest{
					ObjectId:     id,
					CellLocation: location(r, c),
					Style:        &slides.ParagraphStyle{Alignment: "CENTER"},
					TextRange:    &slides.Range{Type: "ALL"},
					Fields:       "alignment",
				},
			})
		}
	}

	requests = append(requests, &slides.Request{
		UpdateTableRowProperties: &slides.UpdateTableRowPropertiesRequest{
			ObjectId: id,
			TableRowProperties: &slides.TableRowProperties{
				MinRowHeight: emu(size.Height / float64(t.Rows())),
			},
			Fields: "minRowHeight",
		},
	})

	for c, p := range t.Proportions() {
		requests = append(requests, &slides.Request{
			UpdateTableColumnProperties: &slides.UpdateTableColumnPropertiesRequest{
				ObjectId:      id,
				ColumnIndices: []int64{int64(c)},
				TableColumnProperties: &slides.TableColumnProperties{
					ColumnWidth: emu(size.Width * p),
				},
				Fields: "columnWidth",
			},
		})
	}
	return requests
}

func (t *Table) textStyle(id string, r, c int) *slides.Request {
	font := color.Black
	bold := false
	switch {
	case t.header && r == 0:
		font, bold = t.headerFont, true
	case t.stub && c == 0:
		font, bold = t.stubFont, true
	}

	style := &slides.TextStyle{
		ForegroundColor: &slides.OptionalColor{
			OpaqueColor: &slides.OpaqueColor{RgbColor: rgbColor(font)},
		},
		Bold:       bold,
		FontFamily: t.font,
		FontSize:   &slides.Dimension{Magnitude: float64(t.fontSize), Unit: "PT"},
	}
	if !bold {
		style.ForceSendFields = []string{"Bold"}
	}
	return &slides.Request{
		UpdateTextStyle: &slides.UpdateTextStyleRequest{
			ObjectId:     id,
			CellLocation: location(r, c),
			Style:        style,
			TextRange:    &slides.Range{Type: "ALL"},
			Fields:       "foregroundColor,bold,fontFamily,fontSize",
		},
	}
}

func (t *Table) cellProperties(id string) []*slides.Request {
	rows, columns := int64(t.Rows()), int64(t.Columns())
	requests := []*slides.Request{{
		UpdateTableCellProperties: &slides.UpdateTableCellPropertiesRequest{
			ObjectId:            id,
			TableRange:          tableRange(rows, columns),
			TableCellProperties: &slides.TableCellProperties{ContentAlignment: "MIDDLE"},
			Fields:              "contentAlignment",
		},
	}}
	if t.stub {
		requests = append(requests, fill(id, tableRange(rows, 1), t.stubBackground))
	}
	if t.header {
		requests = append(requests, fill(id, tableRange(1, columns), t.headerBackground))
	}
	return requests
}

func fill(id string, rng *slides.TableRange, c color.RGB) *slides.Request {
	return &slides.Request{
		UpdateTableCellProperties: &slides.UpdateTableCellPropertiesRequest{
			ObjectId:   id,
			TableRange: rng,
			TableCellProperties: &slides.TableCellProperties{
				TableCellBackgroundFill: &slides.TableCellBackgroundFill{
					SolidFill: &slides.SolidFill{
						Color: &slides.OpaqueColor{RgbColor: rgbColor(c)},
					},
				},
			},
			Fields: "tableCellBackgroundFill.solidFill.color",
		},
	}
}

func tableRange(rows, columns int64) *slides.TableRange {
	return &slides.TableRange{
		Location:   location(0, 0),
		RowSpan:    rows,
		ColumnSpan: columns,
	}
}

func location(r, c int) *slides.TableCellLocation {
	return &slides.TableCellLocation{RowIndex: int64(r), ColumnIndex: int64(c)}
}

func emu(v float64) *slides.Dimension {
	return &slides.Dimension{Magnitude: v, Unit: "EMU"}
}

func rgbColor(c color.RGB) *slides.RgbColor {
	return &slides.RgbColor{Red: c.Red, Green: c.Green, Blue: c.Blue}
}
