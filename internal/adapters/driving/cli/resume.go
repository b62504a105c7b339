package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Manage the stored resume and job description",
}

var resumeUploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a resume (PDF, DOCX or plain text)",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumeUpload,
}

var resumeJobCmd = &cobra.Command{
	Use:   "job [description]",
	Short: "Store the job description to analyze against",
	Long: `Stores the job description for match, ats and cover-letter commands.
Pass the text as an argument, or "-" to read from stdin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResumeJob,
}

var resumeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show what is stored in the current session",
	RunE:  runResumeShow,
}

var resumeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the stored resume and job description",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if matchService == nil {
			return errors.New("match service not configured")
		}
		if err := matchService.ClearData(cmd.Context()); err != nil {
			return fmt.Errorf("clear session failed: %w", err)
		}
		cmd.Println("Session cleared.")
		return nil
	},
}

func init() {
	resumeCmd.AddCommand(resumeUploadCmd)
	resumeCmd.AddCommand(resumeJobCmd)
	resumeCmd.AddCommand(resumeShowCmd)
	resumeCmd.AddCommand(resumeClearCmd)
	rootCmd.AddCommand(resumeCmd)
}

func runResumeUpload(cmd *cobra.Command, args []string) error {
	if matchService == nil {
		return errors.New("match service not configured")
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	mem, err := matchService.UploadResume(cmd.Context(), filepath.Base(path), "", data)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Printf("Stored resume %s (%d characters extracted).\n",
		mem.UploadedFilename, len(mem.ResumeText))
	return nil
}

func runResumeJob(cmd *cobra.Command, args []string) error {
	if matchService == nil {
		return errors.New("match service not configured")
	}

	description := strings.Join(args, " ")
	if description == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		description = string(data)
	}

	mem, err := matchService.SetJobDescription(cmd.Context(), description)
	if err != nil {
		return fmt.Errorf("store job description failed: %w", err)
	}

	cmd.Printf("Stored job description (%d characters).\n", len(mem.JobDescription))
	return nil
}

func runResumeShow(cmd *cobra.Command, _ []string) error {
	if matchService == nil {
		return errors.New("match service not configured")
	}

	mem, err := matchService.StoredData(cmd.Context())
	if err != nil {
		return fmt.Errorf("load session failed: %w", err)
	}

	if mem.HasResume() {
		cmd.Printf("Resume: %s (%d characters, uploaded %s)\n",
			mem.UploadedFilename, len(mem.ResumeText), mem.UploadedAt.Format("2006-01-02 15:04"))
	} else {
		cmd.Println("Resume: not uploaded")
	}

	if mem.HasJob() {
		cmd.Printf("Job description: %d characters (stored %s)\n",
			len(mem.JobDescription), mem.JobStoredAt.Format("2006-01-02 15:04"))
	} else {
		cmd.Println("Job description: not stored")
	}
	return nil
}
