// Package report renders tabular exports of the trade network.
package report

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/trade-network/internal/domain/units"
)

// Units renders the unit table as an xlsx workbook: one row per unit with its
// type label, debt, level and contact city.
func Units(us []units.Unit) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"id",
		"title",
		"unit_type",
		"provider_id",
		"debt",
		"level",
		"city",
		"products",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	row := 2
	for _, u := range us {
		var providerID interface{}
		if u.ProviderID != nil {
			providerID = *u.ProviderID
		}
		city := ""
		if u.Contact != nil {
			city = u.Contact.City
		}
		excelRow := []interface{}{
			u.ID,
			u.Title,
			u.Type.Label(),
			providerID,
			u.Debt.StringFixed(2),
			u.Level,
			city,
			len(u.Products),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, err
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
