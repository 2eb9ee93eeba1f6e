package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files <project-id>",
	Short: "List the files stored in a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := getClient().ProjectFiles(args[0])
		if err != nil {
			return err
		}

		if resp.Count == 0 {
			fmt.Println("No files uploaded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSIZE\tMODIFIED")
		for _, f := range resp.Files {
			fmt.Fprintf(w, "%s\t%d\t%s\n", f.Name, f.Size, f.ModifiedAt)
		}
		return w.Flush()
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload <project-id> <file>...",
	Short: "Upload files to a project",
	Long: `Upload one or more files to a project. Directories are expanded one
level deep; nested directories are skipped.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := expandPaths(args[1:])
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no files to upload")
		}

		result, err := getClient().Upload(args[0], paths)
		if err != nil {
			return err
		}

		for _, name := range result.Accepted {
			fmt.Printf("  uploaded %s\n", name)
		}
		for _, rej := range result.Rejected {
			fmt.Fprintf(os.Stderr, "  rejected %s: %s\n", rej.Name, rej.Reason)
		}
		fmt.Printf("%d uploaded, %d rejected\n", len(result.Accepted), len(result.Rejected))

		if len(result.Rejected) > 0 {
			os.Exit(1)
		}
		return nil
	},
}

// expandPaths resolves directory arguments to the regular files directly
// inside them.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.Type().IsRegular() {
				paths = append(paths, filepath.Join(arg, entry.Name()))
			}
		}
	}
	return paths, nil
}

func init() {
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(uploadCmd)
}
