package visualization

import (
	"fmt"

	"github.com/jhoicas/store-report/internal/application/analytics"
	"github.com/jhoicas/store-report/internal/domain/aggregate"
	"github.com/jhoicas/store-report/internal/domain/entity"
	"github.com/jhoicas/store-report/pkg/numfmt"
)

const (
	ratingPanelTitle  = "Calificación promedio por categoría"
	reviewsPanelTitle = "Productos con más reseñas"
	topReviewed       = 8
	maxRating         = 5.0
)

// RenderReviewAnalysis grafica la calificación promedio por categoría (escala
// fija 0..5) junto a los productos con más reseñas. Escribe review_analysis.png.
func RenderReviewAnalysis(table *entity.SalesTable, outputDir string) (string, error) {
	dir, err := ensureDir(outputDir)
	if err != nil {
		return "", err
	}
	rows := table.Rows()

	ratings := analytics.AverageRatingByCategory(rows)
	aggregate.SortDesc(ratings, aggregate.LessDecimal)
	ratingPanel := hbarPanel{
		title:  ratingPanelTitle,
		xLabel: "Calificación promedio",
		max:    maxRating,
		color:  colorGreen,
		format: func(v float64) string { return fmt.Sprintf("%.2f", v) },
		width:  panelWidth,
		height: panelHeight,
	}
	for _, r := range ratings {
		ratingPanel.labels = append(ratingPanel.labels, r.Key)
		ratingPanel.values = append(ratingPanel.values, r.Value.InexactFloat64())
	}

	reviews := analytics.ReviewsByProduct(rows)
	aggregate.SortDesc(reviews, aggregate.LessInt)
	reviewsPanel := hbarPanel{
		title:  reviewsPanelTitle,
		xLabel: "Reseñas de clientes",
		color:  colorOrange,
		format: func(v float64) string { return numfmt.Int(int64(v)) },
		width:  panelWidth,
		height: panelHeight,
	}
	for _, r := range aggregate.Top(reviews, topReviewed) {
		reviewsPanel.labels = append(reviewsPanel.labels, r.Key)
		reviewsPanel.values = append(reviewsPanel.values, float64(r.Value))
	}

	left, err := ratingPanel.rasterize()
	if err != nil {
		return "", renderErr(ReviewAnalysisFile, err)
	}
	right, err := reviewsPanel.rasterize()
	if err != nil {
		return "", renderErr(ReviewAnalysisFile, err)
	}
	return writePNG(dir, ReviewAnalysisFile, sideBySide(left, right))
}
