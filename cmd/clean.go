package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zhubert/sidepanel/internal/logger"
	"github.com/zhubert/sidepanel/internal/store"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all chats and log files",
	Long: `Deletes every chat and message from the history database and removes the
debug log with its rotated backups.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(os.Stdin)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	storePath := cfg.GetStorePath()
	st, err := store.Open(storePath)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	sessions, err := st.Sessions(ctx)
	if err != nil {
		return err
	}
	path := logPath(cfg)

	if len(sessions) == 0 && !fileExists(path) {
		fmt.Println("Nothing to clean.")
		return nil
	}

	fmt.Println("This will clean:")
	if len(sessions) > 0 {
		fmt.Printf("  - %d chat(s) in %s\n", len(sessions), storePath)
	}
	fmt.Printf("  - Log files at %s\n", path)

	if !skipConfirm {
		if !confirm(input, "Continue?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := st.Clear(ctx); err != nil {
		return fmt.Errorf("error clearing history: %w", err)
	}

	logsCleared, err := logger.ClearLogs(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	fmt.Println()
	fmt.Println("Cleaned:")
	if len(sessions) > 0 {
		fmt.Printf("  - %d chat(s) deleted\n", len(sessions))
	}
	if logsCleared > 0 {
		fmt.Printf("  - %d log file(s) removed\n", logsCleared)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
