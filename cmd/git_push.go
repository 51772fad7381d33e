package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/gitops"
	"github.com/spf13/cobra"
)

func newGitPushCmd() *cobra.Command {
	var (
		message string
		yes     bool
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Commit all changes and push to trigger a firmware build",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return pushChanges(cfg.Root, message, cfg.Git.DefaultMessage, yes)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

func pushChanges(root, message, defaultMessage string, yes bool) error {
	client := gitops.New(root)

	changes, err := changedFiles(root)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		fmt.Println(faintStyle.Render("No changes to commit"))
		return nil
	}

	printChanges(changes)
	fmt.Println()

	if !yes && !confirm("Commit and push?") {
		fmt.Println(faintStyle.Render("Aborted"))
		return nil
	}

	if message == "" {
		message = promptLine(fmt.Sprintf("Commit message [%s]: ", defaultMessage))
		if message == "" {
			message = defaultMessage
		}
	}

	if err := client.AddAll(); err != nil {
		return err
	}
	if err := client.Commit(message); err != nil {
		return err
	}
	fmt.Printf("%s Committed: %s\n", successStyle.Render("✓"), message)

	fmt.Printf("%s Pushing...\n", infoStyle.Render("→"))
	if err := client.Push(); err != nil {
		return err
	}
	fmt.Printf("%s Pushed! GitHub Actions will build firmware.\n", successStyle.Render("✓"))
	return nil
}

// confirm asks a yes/no question on stdin. Enter means yes.
func confirm(question string) bool {
	answer := promptLine(fmt.Sprintf("%s [Y/n] ", question))
	answer = strings.ToLower(answer)
	return answer == "" || answer == "y" || answer == "yes"
}

func promptLine(prompt string) string {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}
