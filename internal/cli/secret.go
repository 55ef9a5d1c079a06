package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/pado/internal/keyring"
)

type SecretCmd struct {
	Set    SecretSetCmd    `cmd:"" help:"Store the remote backend password in the OS keyring."`
	Delete SecretDeleteCmd `cmd:"" help:"Remove the remote backend password from the OS keyring."`
	Status SecretStatusCmd `cmd:"" help:"Check the OS keyring." default:"1"`
}

// SecretSetCmd stores the backend password in the OS keyring
type SecretSetCmd struct {
	Password string `arg:"" optional:"" help:"Password to store. Read from stdin when omitted."`
}

func (cmd *SecretSetCmd) Run(ctx *Context) error {
	password := cmd.Password
	if password == "" {
		ctx.printf("Password: ")
		line, err := ctx.readLine()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		ctx.println()
		password = line
	}
	if password == "" {
		return errors.New("password must not be empty")
	}

	if err := keyring.SetBackendPassword(password); err != nil {
		return err
	}
	ctx.println("✓ Backend password stored in OS keyring")
	return nil
}

// SecretDeleteCmd removes the backend password from the OS keyring
type SecretDeleteCmd struct{}

func (cmd *SecretDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteBackendPassword(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no backend password found in keyring")
		}
		return fmt.Errorf("failed to delete password from keyring: %w", err)
	}
	ctx.println("✓ Backend password deleted from OS keyring")
	return nil
}

// SecretStatusCmd checks the availability of the OS keyring
type SecretStatusCmd struct{}

func (cmd *SecretStatusCmd) Run(ctx *Context) error {
	if !keyring.IsAvailable() {
		ctx.println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.println("✓ OS keyring is available")

	_, err := keyring.GetBackendPassword()
	switch {
	case err == nil:
		ctx.println("✓ Backend password is stored in keyring")
	case errors.Is(err, keyring.ErrNotFound):
		ctx.println("ℹ No backend password stored in keyring")
	default:
		return fmt.Errorf("failed to read keyring: %w", err)
	}
	return nil
}
