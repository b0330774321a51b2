package xlsxGenerator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wzhuang/portfolio_watcher/internal/model"
	"github.com/wzhuang/portfolio_watcher/utils"
	"github.com/xuri/excelize/v2"
)

type XLSXGenerator struct{}

func New() *XLSXGenerator {
	return &XLSXGenerator{}
}

// Generate renders the snapshot into a workbook: positions table on top,
// summary block below it.
func (g *XLSXGenerator) Generate(ctx context.Context, snapshot model.PortfolioSnapshot) (fileBytes []byte, fileExtension string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "XLSXGenerator.Generate"

	slog.Debug("Generate start", slog.String("rqID", rqID), slog.String("op", op))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("got error while closing file", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		}
	}()

	sheetName := "Portfolio"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		slog.Error("got error while renaming sheet", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	if err := g.fillPositions(f, sheetName, snapshot.Positions); err != nil {
		slog.Error("got error while filling positions", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	if err := g.fillSummary(f, sheetName, snapshot, len(snapshot.Positions)+3); err != nil {
		slog.Error("got error while filling summary", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		slog.Error("got error while Saving file to bytes buffer", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	slog.Debug("Generate completed", slog.String("rqID", rqID), slog.String("op", op))

	return buf.Bytes(), ".xlsx", nil
}

func (g *XLSXGenerator) fillPositions(f *excelize.File, sheetName string, positions []model.Position) error {
	styleID, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"#cfe2f3"},
		},
	})
	if err != nil {
		return err
	}

	headers := []string{"name", "code", "market", "shares", "cost", "price", "market value", "P/L", "P/L %"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		_ = f.SetCellStr(sheetName, cell, header)
		if err := f.SetCellStyle(sheetName, cell, cell, styleID); err != nil {
			return err
		}
	}

	for i, p := range positions {
		row := i + 2
		_ = f.SetCellStr(sheetName, fmt.Sprintf("A%d", row), p.Name)
		_ = f.SetCellStr(sheetName, fmt.Sprintf("B%d", row), p.Code)
		_ = f.SetCellStr(sheetName, fmt.Sprintf("C%d", row), string(p.Market))
		_ = f.SetCellInt(sheetName, fmt.Sprintf("D%d", row), int64(p.Shares))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), p.Cost.InexactFloat64())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), p.CurrentPrice.InexactFloat64())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), p.MarketValue.InexactFloat64())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), p.PL.InexactFloat64())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), p.PLPercent.InexactFloat64())
	}

	return nil
}

func (g *XLSXGenerator) fillSummary(f *excelize.File, sheetName string, snapshot model.PortfolioSnapshot, startRow int) error {
	styleID, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"#d9ead3"},
		},
	})
	if err != nil {
		return err
	}

	if err := f.MergeCell(sheetName, fmt.Sprintf("A%d", startRow), fmt.Sprintf("B%d", startRow)); err != nil {
		return err
	}
	_ = f.SetCellStr(sheetName, fmt.Sprintf("A%d", startRow), "Summary")
	if err := f.SetCellStyle(sheetName, fmt.Sprintf("A%d", startRow), fmt.Sprintf("A%d", startRow), styleID); err != nil {
		return err
	}

	summary := snapshot.Summary
	rows := []struct {
		label string
		value float64
	}{
		{"total asset (CNY)", summary.TotalAssetCNY.InexactFloat64()},
		{"total P/L (CNY)", summary.TotalPL.InexactFloat64()},
		{"total P/L %", summary.TotalPLPercent.InexactFloat64()},
		{"US value (USD)", summary.USMarketValueUSD.InexactFloat64()},
		{"US P/L (USD)", summary.USPLUSD.InexactFloat64()},
		{"CN value (CNY)", summary.CNMarketValueCNY.InexactFloat64()},
		{"CN P/L (CNY)", summary.CNPLCNY.InexactFloat64()},
		{"USD/CNY rate", summary.ExchangeRate.InexactFloat64()},
	}

	for i, row := range rows {
		_ = f.SetCellStr(sheetName, fmt.Sprintf("A%d", startRow+1+i), row.label)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", startRow+1+i), row.value)
	}

	_ = f.SetCellStr(sheetName, fmt.Sprintf("A%d", startRow+len(rows)+1), "last updated")
	_ = f.SetCellStr(sheetName, fmt.Sprintf("B%d", startRow+len(rows)+1), snapshot.LastUpdated.Format("2006-01-02 15:04:05"))

	return nil
}
