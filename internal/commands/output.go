package commands

import (
	"fmt"

	"github.com/fatih/color"

	"remont/internal/estimate"
	"remont/internal/models"
)

var badgePalette = map[string]*color.Color{
	models.ColorGray:    color.New(color.FgHiBlack),
	models.ColorBlue:    color.New(color.FgBlue),
	models.ColorPurple:  color.New(color.FgMagenta),
	models.ColorOrange:  color.New(color.FgYellow),
	models.ColorGreen:   color.New(color.FgGreen),
	models.ColorEmerald: color.New(color.FgHiGreen, color.Bold),
	models.ColorRed:     color.New(color.FgRed),
}

// badge renders a status badge in its terminal color
func badge(b models.Badge) string {
	c, ok := badgePalette[b.Color]
	if !ok {
		c = badgePalette[models.ColorGray]
	}
	return c.Sprintf("[%s]", b.Label)
}

func printProject(p models.Project) {
	fmt.Printf("%s %s (ID: %d)\n", color.New(color.Bold).Sprint(p.Title), badge(p.Badge()), p.ID)
	fmt.Printf("   Адрес: %s\n", p.Address)
	fmt.Printf("   Тип: %s\n", p.Type.Label())
	fmt.Printf("   Прогресс: %d%%\n", p.Progress)
	if p.Area != nil {
		fmt.Printf("   Площадь: %.2f м²\n", *p.Area)
	}
	if p.Rooms != nil {
		fmt.Printf("   Комнат: %d\n", *p.Rooms)
	}
	if p.Budget != nil {
		fmt.Printf("   Бюджет: %s\n", estimate.FormatRubles(*p.Budget))
	}
	if p.StartDate != "" || p.Deadline != "" {
		fmt.Printf("   Сроки: %s - %s\n", p.StartDate, p.Deadline)
	}
	if p.Description != "" {
		fmt.Printf("   Описание: %s\n", p.Description)
	}
}

func printMeasurement(m models.Measurement) {
	area := "-"
	if m.Area != nil {
		area = fmt.Sprintf("%.2f м²", *m.Area)
	}
	fmt.Printf("  %d. %s: %.2f × %.2f, высота %.2f м, площадь %s\n", m.ID, m.RoomName, m.Length, m.Width, m.Height, area)
	if m.Notes != nil && *m.Notes != "" {
		fmt.Printf("     %s\n", *m.Notes)
	}
}

func printPhoto(p models.Photo) {
	room := p.RoomName
	if room == "" {
		room = "без комнаты"
	}
	fmt.Printf("  %d. %s %s\n", p.ID, room, p.URL)
	if p.Description != "" {
		fmt.Printf("     %s\n", p.Description)
	}
}

func printDetail(d *models.ProjectDetail) {
	printProject(d.Project)

	fmt.Printf("\nЗамеры (%d):\n", len(d.Measurements))
	for _, m := range d.Measurements {
		printMeasurement(m)
	}
	if len(d.Measurements) > 0 {
		fmt.Printf("  Общая площадь: %.2f м²\n", d.TotalArea())
	}

	fmt.Printf("\nФото (%d):\n", len(d.Photos))
	for _, p := range d.Photos {
		printPhoto(p)
	}
}
