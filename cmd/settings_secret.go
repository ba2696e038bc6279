package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/envkeep/internal/ui"
	"github.com/PolarWolf314/envkeep/internal/utils"
	"github.com/PolarWolf314/envkeep/internal/workflows"
)

var secretSetStdin bool

func init() {
	secretSetCmd.Flags().BoolVar(&secretSetStdin, "stdin", false, "read the secret from stdin instead of prompting")

	settingsSecretCmd.AddCommand(secretSetCmd)
	settingsSecretCmd.AddCommand(secretClearCmd)
	settingsSecretCmd.AddCommand(secretResealCmd)
}

func resetSecretSetState() {
	secretSetStdin = false
}

var settingsSecretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Store, clear or re-encrypt secrets",
	Long: `Manages the secrets held in the settings document.

Slots:
  ` + strings.Join(workflows.SecretSlots(), "\n  ") + `
  provider:<id>   API key of a model provider, e.g. provider:openai`,
}

var secretSetCmd = &cobra.Command{
	Use:   "set SLOT",
	Short: "Store a secret",
	Long: `Stores a secret in the named slot. The value is read from a hidden prompt,
or from stdin with --stdin. It is never accepted as an argument.

Examples:
  envkeep settings secret set github
  echo "$OPENAI_API_KEY" | envkeep settings secret set provider:openai --stdin`,
	Args: cobra.ExactArgs(1),
	RunE: runSecretSet,
}

func runSecretSet(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting secret set command")
	slot := args[0]

	var value string
	if secretSetStdin {
		data, err := utils.ReadStdin()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}
		value = utils.TrimLineEnding(string(data))
	} else {
		secret, err := utils.ReadSecret(fmt.Sprintf("Enter secret for %s: ", slot))
		if err != nil {
			return Logger.ErrorfAndReturn("%v (hint: use %s)", err, "--stdin")
		}
		value = secret
	}

	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	result, err := workflows.SetSecret(context.Background(), ws, workflows.SetSecretOptions{
		Slot:  slot,
		Value: value,
	})
	if err != nil {
		return reportError(err)
	}

	if result.Encrypted {
		fmt.Println(ui.Success.Sprint("✓") + " Stored " + ui.Key.Sprint(result.Slot) + " encrypted")
		return nil
	}
	fmt.Println(ui.Success.Sprint("✓") + " Stored " + ui.Key.Sprint(result.Slot))
	fmt.Println(ui.Warning.Sprint("⚠") + " Secure storage unavailable: the secret is stored as plaintext")
	return nil
}

var secretClearCmd = &cobra.Command{
	Use:   "clear SLOT",
	Short: "Remove a secret",
	Long: `Removes the secret in the named slot. Clearing the last token of a Supabase
or Neon pair removes the pair.

Examples:
  envkeep settings secret clear vercel
  envkeep settings secret clear provider:anthropic`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting secret clear command")

		ws, err := loadWorkspace()
		if err != nil {
			return err
		}

		if err := workflows.ClearSecret(context.Background(), ws, workflows.ClearSecretOptions{Slot: args[0]}); err != nil {
			return reportError(err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Cleared " + ui.Key.Sprint(args[0]))
		return nil
	},
}

var secretResealCmd = &cobra.Command{
	Use:   "reseal",
	Short: "Encrypt secrets stored as plaintext",
	Long: `Rewrites the settings file so every secret is encrypted with the system
keychain. Use it after secure storage becomes available on a machine that
stored secrets as plaintext.

The settings file must be readable; a file that falls back to the defaults is
never overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting secret reseal command")

		ws, err := loadWorkspace()
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Re-encrypting secrets...")
		defer cleanup()

		result, err := workflows.ResealSecrets(context.Background(), ws)
		if err != nil {
			spinner.FinalMSG = formatError(err)
			return &ReportedError{Err: err}
		}

		if !result.Encrypted {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Secure storage unavailable: " +
				fmt.Sprintf("%d secrets left as plaintext", result.Count)
			return nil
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Encrypted %d secrets", result.Count)
		return nil
	},
}
