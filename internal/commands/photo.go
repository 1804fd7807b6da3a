package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"remont/internal/api"
	"remont/internal/measure"
	"remont/internal/util"
)

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Manage project photos",
}

var photoListCmd = &cobra.Command{
	Use:   "list [project-id]",
	Short: "List the photos of a project",
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

		return listPhotos(ctx, newClient(), projectID)
	},
}

func listPhotos(ctx context.Context, client *api.Client, projectID int) error {
	photos, err := client.ListPhotos(ctx, projectID)
	if err != nil {
		return fmt.Errorf("error listing photos: %w", err)
	}
	if len(photos) == 0 {
		fmt.Println("Фотографий пока нет")
		return nil
	}
	for _, p := range photos {
		printPhoto(p)
	}
	return nil
}

var photoUploadCmd = &cobra.Command{
	Use:   "upload [project-id] [file...]",
	Short: "Upload photos to a project",
	Args:  cobra.MinimumNArgs(2),
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
		description, _ := cmd.Flags().GetString("description")

		client := newClient()
		var failed int
		for _, path := range args[1:] {
			content, err := os.ReadFile(path)
			if err != nil {
				color.Red("  %s: %v\n", path, err)
				failed++
				continue
			}

			uploaded, err := client.UploadPhoto(ctx, projectID, content, measure.RoomName(room), description)
			if err != nil {
				color.Red("  %s: %v\n", path, err)
				failed++
				continue
			}
			color.Green("  %s (%s) -> %s\n", filepath.Base(path), util.FormatSize(int64(len(content))), uploaded.URL)
		}

		fmt.Println()
		if err := listPhotos(ctx, client, projectID); err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d uploads failed", failed, len(args)-1)
		}
		return nil
	},
}

var photoDeleteCmd = &cobra.Command{
	Use:   "delete [photo-id]",
	Short: "Delete a photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "photo")
		if err != nil {
			return err
		}
		projectID, _ := cmd.Flags().GetInt("project")

		client := newClient()
		if err := client.DeletePhoto(ctx, id); err != nil {
			return fmt.Errorf("error deleting photo: %w", err)
		}
		fmt.Printf("Фото %d удалено\n", id)
		return listPhotos(ctx, client, projectID)
	},
}

func init() {
	photoUploadCmd.Flags().String("room", "", "Room shown in the photo")
	photoUploadCmd.Flags().String("description", "", "Photo description")
	photoDeleteCmd.Flags().Int("project", 0, "Project the photo belongs to")
	photoDeleteCmd.MarkFlagRequired("project")

	photoCmd.AddCommand(photoListCmd)
	photoCmd.AddCommand(photoUploadCmd)
	photoCmd.AddCommand(photoDeleteCmd)
}
