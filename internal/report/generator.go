// Package report renders the weekly progress report as a PDF.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/fitpulse/backend/internal/metrics"
	"github.com/fitpulse/backend/internal/service"
	"github.com/fitpulse/backend/pkg/model"
)

// Generator renders weekly progress reports.
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates a new Generator.
func NewGenerator(logger *zap.Logger) *Generator {
	return &Generator{
		logger: logger,
	}
}

// Data contains everything a weekly report renders.
type Data struct {
	UserName  string
	DateRange string
	Metrics   metrics.Summary
	Days      []service.DailyProgress
	Weekly    service.WeeklySummary
	Overview  service.Overview
	Badges    []model.Badge
	Workouts  []model.Event
}

// Generate creates the PDF report bytes from the provided data.
func (g *Generator) Generate(data *Data) ([]byte, error) {
	g.logger.Info("generating weekly report",
		zap.String("date_range", data.DateRange),
		zap.Int("days", len(data.Days)),
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	g.addTitle(pdf, "Weekly Progress Report", data.UserName, data.DateRange)
	g.addMetrics(pdf, data.Metrics)
	g.addDailyProgress(pdf, data.Days)
	g.addWorkouts(pdf, data.Workouts)
	g.addWeeklySummary(pdf, data.Weekly)
	g.addGamification(pdf, data.Overview, data.Badges)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		g.logger.Error("failed to generate report", zap.Error(err))
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	g.logger.Info("weekly report generated",
		zap.Int("size_bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}

func (g *Generator) addTitle(pdf *gofpdf.Fpdf, title, userName, dateRange string) {
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	if userName != "" {
		pdf.CellFormat(0, 8, fmt.Sprintf("User: %s", userName), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 8, fmt.Sprintf("Period: %s", dateRange), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(10)
}

func (g *Generator) addSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 10, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 10)
}

func (g *Generator) addMetrics(pdf *gofpdf.Fpdf, m metrics.Summary) {
	g.addSectionHeader(pdf, "Body Metrics & Targets")

	pdf.CellFormat(0, 6, fmt.Sprintf("BMI: %.1f (%s)", m.BMI, m.BMICategory), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("BMR: %.0f kcal", m.BMR), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("TDEE: %.0f kcal", m.TDEE), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Calorie target: %d kcal", m.CalorieTarget), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Protein target: %d g", m.ProteinTarget), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Macros: %.0f g protein / %.0f g carbs / %.0f g fat",
		m.Macros.ProteinG, m.Macros.CarbsG, m.Macros.FatG), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

func (g *Generator) addDailyProgress(pdf *gofpdf.Fpdf, days []service.DailyProgress) {
	g.addSectionHeader(pdf, "Daily Progress")

	if len(days) == 0 {
		pdf.CellFormat(0, 8, "No activity recorded during this period.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, d := range days {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, d.Date, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 5, fmt.Sprintf("  Calories: %.0f (%.0f%% of target)", d.Totals.Calories, d.CaloriePercent), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("  Protein: %.0f g (%.0f%% of target)", d.Totals.ProteinG, d.ProteinPercent), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("  Water: %d glasses (%.0f%% of target)", d.WaterGlasses, d.WaterPercent), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("  Workouts: %d, meals logged: %d", d.WorkoutsLogged, d.MealsLogged), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}
	pdf.Ln(5)
}

func (g *Generator) addWorkouts(pdf *gofpdf.Fpdf, workouts []model.Event) {
	g.addSectionHeader(pdf, "Workouts")

	if len(workouts) == 0 {
		pdf.CellFormat(0, 8, "No workouts recorded during this period.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, w := range workouts {
		if w.Workout == nil {
			continue
		}
		pdf.CellFormat(0, 6, fmt.Sprintf("%s - %s: %d min, %d kcal, intensity %d/10",
			w.Date, w.Workout.Type, w.Workout.DurationMin, w.Workout.Calories, w.Workout.Intensity), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

func (g *Generator) addWeeklySummary(pdf *gofpdf.Fpdf, w service.WeeklySummary) {
	g.addSectionHeader(pdf, "Weekly Summary")

	pdf.CellFormat(0, 6, fmt.Sprintf("Workouts: %d of %d target (%.0f%%)",
		w.WorkoutCount, w.WorkoutTarget, w.WorkoutPercent), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Current streak: %d days", w.StreakDays), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for _, b := range w.History {
		pdf.CellFormat(0, 5, fmt.Sprintf("  Week of %s: %d workouts, %.0f kcal, %.0f g protein",
			b.WeekStart, b.Workouts, b.Calories, b.ProteinG), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

func (g *Generator) addGamification(pdf *gofpdf.Fpdf, o service.Overview, badges []model.Badge) {
	g.addSectionHeader(pdf, "Points & Achievements")

	pdf.CellFormat(0, 6, fmt.Sprintf("Total points: %d (level %d)", o.TotalPoints, o.Level), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Points to next level: %d", o.PointsToNext), "", 1, "L", false, 0, "")

	if len(badges) == 0 {
		pdf.CellFormat(0, 6, "No badges earned yet.", "", 1, "L", false, 0, "")
	} else {
		for _, b := range badges {
			pdf.CellFormat(0, 5, fmt.Sprintf("  %s - %s (earned %s)", b.Name, b.Description, b.EarnedDate), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(5)
}
