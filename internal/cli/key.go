package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ganot/tlink/internal/credentials"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newKeyCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the TestLink dev key in the OS credential store",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set",
		Short: "Store the dev key (read from the terminal or stdin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := rt.readSecret("TestLink dev key: ")
			if err != nil {
				return err
			}
			if key == "" {
				return fmt.Errorf("empty dev key")
			}
			if err := rt.store.Set(cmd.Context(), credentials.DevKeyName, key); err != nil {
				return err
			}
			printLine(rt.out, "dev key stored")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unset",
		Short: "Remove the stored dev key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.store.Unset(cmd.Context(), credentials.DevKeyName); err != nil {
				return err
			}
			printLine(rt.out, "dev key removed")
			return nil
		},
	})
	return cmd
}

// readSecret reads without echo from a terminal, else one line from the input.
func (rt *runtime) readSecret(prompt string) (string, error) {
	if f, ok := rt.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(rt.errOut, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(rt.errOut)
		if err != nil {
			return "", fmt.Errorf("reading dev key: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	line, err := bufio.NewReader(rt.in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading dev key: %w", err)
	}
	return strings.TrimSpace(line), nil
}
