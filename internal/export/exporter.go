package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"hotelier/internal/domain"
	"hotelier/internal/models"
)

// Exporter создает Excel отчеты по загрузке отеля
type Exporter struct {
	store domain.Store
	path  string
	log   zerolog.Logger
}

func NewExporter(store domain.Store, path string, logger *zerolog.Logger) *Exporter {
	return &Exporter{
		store: store,
		path:  path,
		log:   logger.With().Str("component", "export").Logger(),
	}
}

// OccupancyReport создает Excel файл с сеткой занятости номеров за период.
// Строки - номера отеля, колонки - даты, в ячейках активные брони.
func (e *Exporter) OccupancyReport(ctx context.Context, hotelID int64, rng models.DateRange) (string, error) {
	if !rng.Valid() {
		return "", fmt.Errorf("invalid date range: %s - %s", rng.Start, rng.End)
	}

	// Создаем папку для экспорта, если не существует
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	hotel, err := e.store.GetHotel(ctx, hotelID)
	if err != nil {
		return "", fmt.Errorf("error getting hotel: %w", err)
	}

	rooms, err := e.store.GetRoomsByHotel(ctx, hotelID, false)
	if err != nil {
		return "", fmt.Errorf("error getting rooms: %w", err)
	}

	reservations, err := e.store.ListReservations(ctx, models.ReservationFilter{
		HotelID: hotelID,
		Limit:   models.MaxPageLimit,
	})
	if err != nil {
		return "", fmt.Errorf("error getting reservations: %w", err)
	}

	byRoom := make(map[int64][]*models.Reservation)
	for _, r := range reservations {
		if !models.IsOccupying(r.Status) && r.Status != models.StatusPending {
			continue
		}
		if !r.Range().Overlaps(rng) {
			continue
		}
		byRoom[r.RoomID] = append(byRoom[r.RoomID], r)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Занятость"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s: %s - %s",
		hotel.Name, rng.Start.Format("02.01.2006"), rng.End.Format("02.01.2006")))

	dateCols := e.writeDateHeaders(f, sheetName, rng)
	e.writeRoomRows(f, sheetName, rooms, byRoom, rng)

	_ = f.SetColWidth(sheetName, "A", "A", 25)
	if len(dateCols) > 0 {
		last, _ := excelize.ColumnNumberToName(len(dateCols) + 1)
		_ = f.SetColWidth(sheetName, "B", last, 18)
		_ = f.MergeCell(sheetName, "A1", last+"1")
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", style)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("occupancy_%d_%s_to_%s.xlsx",
		hotelID,
		rng.Start.Format(models.DateLayout),
		rng.End.Format(models.DateLayout))
	filePath := filepath.Join(e.path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.log.Info().Str("file_path", filePath).Int64("hotel_id", hotelID).Msg("occupancy report created")
	return filePath, nil
}

func (e *Exporter) writeDateHeaders(f *excelize.File, sheetName string, rng models.DateRange) map[string]int {
	col := 2
	currentDate := rng.Start
	dateCols := make(map[string]int)

	style, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for !currentDate.After(rng.End) {
		cell, _ := excelize.CoordinatesToCellName(col, 2)
		_ = f.SetCellValue(sheetName, cell, currentDate.Format("02.01"))
		_ = f.SetCellStyle(sheetName, cell, cell, style)
		dateCols[currentDate.Format(models.DateLayout)] = col

		col++
		currentDate = currentDate.AddDate(0, 0, 1)
	}
	return dateCols
}

func (e *Exporter) writeRoomRows(
	f *excelize.File, sheetName string,
	rooms []*models.Room,
	byRoom map[int64][]*models.Reservation,
	rng models.DateRange,
) {
	roomStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2EFDA"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	occupiedStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFC7CE"}, Pattern: 1},
	})
	pendingStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFEB9C"}, Pattern: 1},
	})

	row := 3
	for _, room := range rooms {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		_ = f.SetCellValue(sheetName, cell, fmt.Sprintf("Номер %s (%s)", room.RoomNumber, room.Type))
		_ = f.SetCellStyle(sheetName, cell, cell, roomStyle)

		col := 2
		currentDate := rng.Start
		for !currentDate.After(rng.End) {
			day := models.DateRange{Start: currentDate, End: currentDate}

			var value string
			var style int
			for _, r := range byRoom[room.ID] {
				if !r.Range().Overlaps(day) {
					continue
				}
				value = fmt.Sprintf("#%d %s", r.ID, r.Status)
				if models.IsOccupying(r.Status) {
					style = occupiedStyle
				} else {
					style = pendingStyle
				}
				break
			}

			cell, _ := excelize.CoordinatesToCellName(col, row)
			if value != "" {
				_ = f.SetCellValue(sheetName, cell, value)
				_ = f.SetCellStyle(sheetName, cell, cell, style)
			}

			col++
			currentDate = currentDate.AddDate(0, 0, 1)
		}
		row++
	}
}
