package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"remont/internal/api"
	"remont/internal/measure"
	"remont/internal/models"
)

var measurementCmd = &cobra.Command{
	Use:     "measurement",
	Aliases: []string{"measure"},
	Short:   "Record room measurements",
	Long:    "List, add, update and delete the room measurements of a project",
}

var measurementListCmd = &cobra.Command{
	Use:   "list [project-id]",
	Short: "List the measurements of a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		projectID, err := parseID(args[0], "project")
		if err != nil {
			return err
		}
		return listMeasurements(ctx, newClient(), projectID)
	},
}

var measurementAddCmd = &cobra.Command{
	Use:   "add [project-id]",
	Short: "Add a room measurement",
	Long: `Add a room measurement. Dimensions are in meters; a comma may be used as
the decimal separator. The area is length × width, height is stored separately.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		projectID, err := parseID(args[0], "project")
		if err != nil {
			return err
		}

		room, _ := cmd.Flags().GetString("room")
		if room == "" {
			room = promptRoom()
		}
		length, err := meterFlag(cmd, "length", "Длина, м: ")
		if err != nil {
			return err
		}
		width, err := meterFlag(cmd, "width", "Ширина, м: ")
		if err != nil {
			return err
		}
		height, err := meterFlag(cmd, "height", "Высота, м: ")
		if err != nil {
			return err
		}

		m := models.NewMeasurement{
			ProjectID: projectID,
			RoomName:  measure.RoomName(room),
			Length:    length,
			Width:     width,
			Height:    height,
		}
		if cmd.Flags().Changed("notes") {
			notes, _ := cmd.Flags().GetString("notes")
			m.Notes = &notes
		}
		fmt.Printf("Площадь: %.2f м²\n", measure.Area(length, width))

		client := newClient()
		created, err := client.CreateMeasurement(ctx, m)
		if err != nil {
			return fmt.Errorf("error saving measurement: %w", err)
		}
		color.Green("Замер %d сохранён\n", created.ID)
		return listMeasurements(ctx, client, projectID)
	},
}

var measurementUpdateCmd = &cobra.Command{
	Use:   "update [measurement-id]",
	Short: "Update a measurement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "measurement")
		if err != nil {
			return err
		}

		var u models.MeasurementUpdate
		if cmd.Flags().Changed("room") {
			room, _ := cmd.Flags().GetString("room")
			room = measure.RoomName(room)
			u.RoomName = &room
		}
		for name, dst := range map[string]**float64{"length": &u.Length, "width": &u.Width, "height": &u.Height} {
			if !cmd.Flags().Changed(name) {
				continue
			}
			raw, _ := cmd.Flags().GetString(name)
			v, ok := measure.ParseMeters(raw)
			if !ok {
				return fmt.Errorf("invalid %s: %q", name, raw)
			}
			*dst = &v
		}
		if cmd.Flags().Changed("notes") {
			notes, _ := cmd.Flags().GetString("notes")
			u.Notes = &notes
		}

		projectID, _ := cmd.Flags().GetInt("project")

		client := newClient()
		if err := client.UpdateMeasurement(ctx, id, u); err != nil {
			return fmt.Errorf("error updating measurement: %w", err)
		}
		color.Green("Замер %d обновлён\n", id)
		return listMeasurements(ctx, client, projectID)
	},
}

var measurementDeleteCmd = &cobra.Command{
	Use:   "delete [measurement-id]",
	Short: "Delete a measurement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "measurement")
		if err != nil {
			return err
		}
		projectID, _ := cmd.Flags().GetInt("project")

		client := newClient()
		if err := client.DeleteMeasurement(ctx, id); err != nil {
			return fmt.Errorf("error deleting measurement: %w", err)
		}
		fmt.Printf("Замер %d удалён\n", id)
		return listMeasurements(ctx, client, projectID)
	},
}

var measurementAreaCmd = &cobra.Command{
	Use:   "area [length] [width]",
	Short: "Compute the floor area of a room",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		area, ok := measure.AreaFromInput(args[0], args[1])
		if !ok {
			return fmt.Errorf("length and width must be numbers")
		}
		fmt.Printf("%.2f м²\n", area)
		return nil
	},
}

func listMeasurements(ctx context.Context, client *api.Client, projectID int) error {
	measurements, err := client.ListMeasurements(ctx, projectID)
	if err != nil {
		return fmt.Errorf("error listing measurements: %w", err)
	}
	if len(measurements) == 0 {
		fmt.Println("Замеров пока нет")
		return nil
	}

	var total float64
	fmt.Printf("Замеры проекта %d:\n", projectID)
	for _, m := range measurements {
		printMeasurement(m)
		if m.Area != nil {
			total += *m.Area
		}
	}
	fmt.Printf("Общая площадь: %.2f м²\n", total)
	return nil
}

// promptRoom offers the room presets; a number picks a preset, anything else is a custom name
func promptRoom() string {
	for i, name := range models.RoomPresets {
		fmt.Printf("  %d. %s\n", i+1, name)
	}
	answer := prompt("Комната (номер или название): ")
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(models.RoomPresets) {
		return models.RoomPresets[n-1]
	}
	return answer
}

func meterFlag(cmd *cobra.Command, name, label string) (float64, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		raw = prompt(label)
	}
	v, ok := measure.ParseMeters(raw)
	if !ok {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

func init() {
	for _, c := range []*cobra.Command{measurementAddCmd, measurementUpdateCmd} {
		c.Flags().String("room", "", "Room name")
		c.Flags().String("length", "", "Length in meters")
		c.Flags().String("width", "", "Width in meters")
		c.Flags().String("height", "", "Height in meters")
		c.Flags().String("notes", "", "Notes")
	}
	for _, c := range []*cobra.Command{measurementUpdateCmd, measurementDeleteCmd} {
		c.Flags().Int("project", 0, "Project the measurement belongs to")
		c.MarkFlagRequired("project")
	}

	measurementCmd.AddCommand(measurementListCmd)
	measurementCmd.AddCommand(measurementAddCmd)
	measurementCmd.AddCommand(measurementUpdateCmd)
	measurementCmd.AddCommand(measurementDeleteCmd)
	measurementCmd.AddCommand(measurementAreaCmd)
}
