package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var projectsJSON bool

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := getClient().ProjectList()
		if err != nil {
			return err
		}

		if projectsJSON {
			return json.NewEncoder(os.Stdout).Encode(resp.Projects)
		}

		if resp.Count == 0 {
			fmt.Println("No projects yet. Create one with 'pagehost projects create <name>'.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSUBDOMAIN\tCREATED")
		for _, p := range resp.Projects {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Subdomain, p.CreatedAt)
		}
		return w.Flush()
	},
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")

		project, err := getClient().ProjectCreate(args[0], description)
		if err != nil {
			return err
		}

		fmt.Printf("Created project %s\n", project.Name)
		fmt.Printf("  ID:        %s\n", project.ID)
		fmt.Printf("  Subdomain: %s\n", project.Subdomain)
		return nil
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project and all of its files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := getClient().ProjectDelete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted project %s\n", args[0])
		return nil
	},
}

func init() {
	projectsListCmd.Flags().BoolVar(&projectsJSON, "json", false, "output as JSON")
	projectsCreateCmd.Flags().StringP("description", "d", "", "project description")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)
	rootCmd.AddCommand(projectsCmd)
}
