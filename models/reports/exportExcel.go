package reports

import (
	"context"
	"fmt"
	"io"

	"github.com/flowstate/tractor-beam/models"
	"github.com/xuri/excelize/v2"
)

const cardsSheet = "Recommendations"

// WriteCardsWorkbook streams the full card set as an xlsx workbook, one
// row per (location, component, quarter, year).
func WriteCardsWorkbook(ctx context.Context, w io.Writer) error {
	cards, err := models.ListCards(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(cardsSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Location", "Component", "Quarter", "Year",
		"Current Units", "Current Cost", "Recommended Units", "Recommended Cost",
		"Unit Delta", "Cost Delta", "Urgency", "Impact", "Priority", "Opportunity Score",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(cardsSheet, cell, h); err != nil {
			return err
		}
	}

	for rowIdx, card := range cards {
		values := []interface{}{
			card.LocationId,
			card.ComponentId,
			fmt.Sprintf("Q%d", card.Quarter),
			card.Year,
			card.CurrentUnits,
			card.CurrentCost.InexactFloat64(),
			card.RecommendedUnits,
			card.RecommendedCost.InexactFloat64(),
			card.UnitDelta,
			card.CostDelta.InexactFloat64(),
			string(card.Urgency),
			string(card.ImpactLevel),
			string(card.Priority),
			card.OpportunityScore,
		}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(cardsSheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}
