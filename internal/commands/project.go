package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"remont/internal/models"
	"remont/internal/ui"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage renovation projects",
	Long:  "Create, list, show and update renovation projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, session, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}

		projects, err := newClient().ListProjects(ctx, session.User.ID)
		if err != nil {
			return fmt.Errorf("error listing projects: %w", err)
		}

		if len(projects) == 0 {
			fmt.Println("Проектов пока нет. Создайте первый: remont project create")
			return nil
		}

		for _, p := range projects {
			printProject(p)
			fmt.Println()
		}
		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show [project-id]",
	Short: "Show a project with its measurements and photos",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "project")
		if err != nil {
			return err
		}

		detail, err := newClient().GetProject(ctx, id)
		if err != nil {
			return err
		}
		printDetail(detail)
		return nil
	},
}

var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, session, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}

		p := models.NewProject{UserID: session.User.ID}
		p.Title, _ = cmd.Flags().GetString("title")
		if p.Title == "" {
			p.Title = prompt("Название проекта: ")
		}
		p.Address, _ = cmd.Flags().GetString("address")
		if p.Address == "" {
			p.Address = prompt("Адрес: ")
		}
		projectType, _ := cmd.Flags().GetString("type")
		p.Type = models.ProjectType(projectType)
		p.Description, _ = cmd.Flags().GetString("description")
		if cmd.Flags().Changed("area") {
			area, _ := cmd.Flags().GetFloat64("area")
			p.Area = &area
		}
		if cmd.Flags().Changed("rooms") {
			rooms, _ := cmd.Flags().GetInt("rooms")
			p.Rooms = &rooms
		}
		if cmd.Flags().Changed("budget") {
			budget, _ := cmd.Flags().GetFloat64("budget")
			p.Budget = &budget
		}

		client := newClient()
		id, err := client.CreateProject(ctx, p)
		if err != nil {
			return fmt.Errorf("error creating project: %w", err)
		}

		detail, err := client.GetProject(ctx, id)
		if err != nil {
			return fmt.Errorf("project %d created, but reloading it failed: %w", id, err)
		}
		fmt.Println("Проект создан")
		printProject(detail.Project)
		return nil
	},
}

var projectUpdateCmd = &cobra.Command{
	Use:   "update [project-id]",
	Short: "Update project fields",
	Long:  "Update the given fields of a project. Flags that are not set are left unchanged.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "project")
		if err != nil {
			return err
		}

		var u models.ProjectUpdate
		flags := cmd.Flags()
		stringFlag := func(name string) *string {
			if !flags.Changed(name) {
				return nil
			}
			v, _ := flags.GetString(name)
			return &v
		}
		u.Title = stringFlag("title")
		u.Address = stringFlag("address")
		u.Description = stringFlag("description")
		u.Status = stringFlag("status")
		u.StartDate = stringFlag("start-date")
		u.Deadline = stringFlag("deadline")
		if t := stringFlag("type"); t != nil {
			projectType := models.ProjectType(*t)
			u.Type = &projectType
		}
		if flags.Changed("area") {
			v, _ := flags.GetFloat64("area")
			u.Area = &v
		}
		if flags.Changed("rooms") {
			v, _ := flags.GetInt("rooms")
			u.Rooms = &v
		}
		if flags.Changed("budget") {
			v, _ := flags.GetFloat64("budget")
			u.Budget = &v
		}
		if flags.Changed("progress") {
			v, _ := flags.GetInt("progress")
			u.Progress = &v
		}
		if u.Status != nil && !models.KnownStatus(*u.Status) {
			logger.Warn("unknown project status", "status", *u.Status)
		}

		client := newClient()
		if err := client.UpdateProject(ctx, id, u); err != nil {
			return fmt.Errorf("error updating project: %w", err)
		}

		detail, err := client.GetProject(ctx, id)
		if err != nil {
			return fmt.Errorf("project updated, but reloading it failed: %w", err)
		}
		fmt.Println("Проект обновлён")
		printProject(detail.Project)
		return nil
	},
}

var projectDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Browse projects in an interactive dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, session, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}

		p := tea.NewProgram(ui.NewModel(ctx, newClient(), session.User), tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running dashboard: %w", err)
		}
		return nil
	},
}

func addProjectFieldFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Project title")
	cmd.Flags().String("address", "", "Property address")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().Float64("area", 0, "Total area in m²")
	cmd.Flags().Int("rooms", 0, "Number of rooms")
	cmd.Flags().Float64("budget", 0, "Budget in rubles")
}

func init() {
	addProjectFieldFlags(projectCreateCmd)
	projectCreateCmd.Flags().String("type", string(models.ProjectApartment), "apartment, house, office or commercial")

	addProjectFieldFlags(projectUpdateCmd)
	projectUpdateCmd.Flags().String("type", "", "apartment, house, office or commercial")
	projectUpdateCmd.Flags().String("status", "", "draft, measurement, design, estimate, in_progress, completed or cancelled")
	projectUpdateCmd.Flags().Int("progress", 0, "Progress in percent, 0 to 100")
	projectUpdateCmd.Flags().String("start-date", "", "Start date, YYYY-MM-DD")
	projectUpdateCmd.Flags().String("deadline", "", "Deadline, YYYY-MM-DD")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectUpdateCmd)
	projectCmd.AddCommand(projectDashboardCmd)
}
