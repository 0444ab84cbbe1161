package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/FrancyJGLisboa/agri-feeders/internal/dataset"
	"github.com/FrancyJGLisboa/agri-feeders/internal/domain"
	"github.com/FrancyJGLisboa/agri-feeders/internal/observability"
)

// CalendarJob extracts the 50%-planted crop calendar workbook into
// per-crop and combined JSON files.
type CalendarJob struct {
	logger  *slog.Logger
	metrics *observability.Metrics

	outputDir string
}

// NewCalendarJob wires a calendar run.
func NewCalendarJob(logger *slog.Logger, metrics *observability.Metrics, outputDir string) *CalendarJob {
	return &CalendarJob{logger: logger, metrics: metrics, outputDir: outputDir}
}

// combinedCalendar is the two-crop output file shape.
type combinedCalendar struct {
	Corn    domain.Calendar `json:"corn"`
	Soybean domain.Calendar `json:"soybean"`
}

// Run reads the workbook, locates the corn and soybean sheets by name, and
// writes crop_calendar_us_corn.json, crop_calendar_us_soybean.json, and the
// combined file. Both crops must be present in the workbook.
func (j *CalendarJob) Run(_ context.Context, workbookPath string) error {
	defer j.observeDuration(time.Now())

	wb, err := excelize.OpenFile(workbookPath)
	if err != nil {
		return fmt.Errorf("open workbook %s: %w", workbookPath, err)
	}
	defer wb.Close()

	var corn, soybean *domain.Calendar
	for _, sheet := range wb.GetSheetList() {
		lower := strings.ToLower(sheet)
		isCorn := strings.Contains(lower, "corn")
		isSoy := strings.Contains(lower, "soy")
		if !isCorn && !isSoy {
			continue
		}

		rows, err := wb.GetRows(sheet)
		if err != nil {
			return fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		cal := domain.BuildCalendar(rows)
		j.logger.Info("sheet extracted", "sheet", sheet, "years", len(cal.ByPlantedYear))

		if isCorn {
			corn = &cal
		} else {
			soybean = &cal
		}
	}

	if corn == nil || soybean == nil {
		return fmt.Errorf("workbook %s is missing a corn or soybean sheet", workbookPath)
	}

	if err := ensureDir(j.outputDir); err != nil {
		return err
	}

	outputs := []struct {
		path string
		v    any
	}{
		{filepath.Join(j.outputDir, "crop_calendar_us_corn.json"), corn},
		{filepath.Join(j.outputDir, "crop_calendar_us_soybean.json"), soybean},
		{filepath.Join(j.outputDir, "crop_calendar_us_corn_soybean.json"), combinedCalendar{Corn: *corn, Soybean: *soybean}},
	}
	for _, out := range outputs {
		if err := dataset.WriteJSON(out.path, out.v); err != nil {
			return err
		}
		j.logger.Info("calendar written", "output", out.path)
	}
	j.metrics.RowsWritten.WithLabelValues("json").Add(float64(len(corn.ByPlantedYear) + len(soybean.ByPlantedYear)))

	return nil
}

func (j *CalendarJob) observeDuration(start time.Time) {
	j.metrics.JobDuration.WithLabelValues("calendar").Observe(time.Since(start).Seconds())
}
