// Command scell seals and opens short messages with a passphrase.
//
// Encrypted output is printed as base64(token).base64(ciphertext) on a
// single line, so it can travel through logs, env files, and copy-paste.
// The passphrase is read from the SCELL_PASSPHRASE environment variable or,
// interactively, from the terminal.
package main

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/seallib/scell"
)

const passphraseEnv = "SCELL_PASSPHRASE"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "scell",
		Short:         "Passphrase-based authenticated encryption",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newEncryptCommand(), newDecryptCommand())
	return root
}

func newEncryptCommand() *cobra.Command {
	var context string
	cmd := &cobra.Command{
		Use:   "encrypt [message]",
		Short: "Seal a message given as an argument or on stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			passphrase, err := readPassphrase(true)
			if err != nil {
				return err
			}
			defer scell.Wipe(passphrase)

			token, encrypted, err := scell.Seal(passphrase, message, contextBytes(context))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s.%s\n",
				base64.StdEncoding.EncodeToString(token),
				base64.StdEncoding.EncodeToString(encrypted))
			return nil
		},
	}
	cmd.Flags().StringVarP(&context, "context", "c", "",
		"associated data bound into the authentication tag")
	return cmd
}

func newDecryptCommand() *cobra.Command {
	var context string
	cmd := &cobra.Command{
		Use:   "decrypt [sealed]",
		Short: "Open a sealed message given as an argument or on stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			token, encrypted, err := splitSealed(string(bytes.TrimSpace(input)))
			if err != nil {
				return err
			}
			passphrase, err := readPassphrase(false)
			if err != nil {
				return err
			}
			defer scell.Wipe(passphrase)

			message, err := scell.Open(passphrase, contextBytes(context), token, encrypted)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", message)
			return nil
		},
	}
	cmd.Flags().StringVarP(&context, "context", "c", "",
		"associated data supplied at encryption time")
	return cmd
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 1 {
		return []byte(args[0]), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return data, nil
}

func contextBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return []byte(s)
}

func splitSealed(s string) (token, encrypted []byte, err error) {
	parts := strings.SplitN(s, ".", 2)
	if len(parts) != 2 {
		return nil, nil, errors.New("sealed input must be base64(token).base64(ciphertext)")
	}
	token, err = base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, nil, fmt.Errorf("decoding token: %w", err)
	}
	encrypted, err = base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, nil, fmt.Errorf("decoding ciphertext: %w", err)
	}
	return token, encrypted, nil
}

// readPassphrase checks the environment first, then prompts on the terminal.
// Encryption asks twice to catch typos.
func readPassphrase(confirm bool) ([]byte, error) {
	if env := os.Getenv(passphraseEnv); env != "" {
		return []byte(env), nil
	}

	passphrase, err := promptPassword("Passphrase: ")
	if err != nil {
		return nil, err
	}
	if len(passphrase) == 0 {
		return nil, errors.New("passphrase must not be empty")
	}
	if !confirm {
		return passphrase, nil
	}

	again, err := promptPassword("Confirm passphrase: ")
	if err != nil {
		scell.Wipe(passphrase)
		return nil, err
	}
	defer scell.Wipe(again)
	if !bytes.Equal(passphrase, again) {
		scell.Wipe(passphrase)
		return nil, errors.New("passphrases do not match")
	}
	return passphrase, nil
}

func promptPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		// stdin carries the message; ask the controlling terminal.
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return nil, fmt.Errorf("stdin is not a terminal: set %s", passphraseEnv)
		}
		defer tty.Close()
		fd = int(tty.Fd())
	}

	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, err
	}
	return passphrase, nil
}
