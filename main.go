// Command inject-demo wires the demo services through the container and
// serves them over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-inject/app"
	"github.com/km-arc/go-inject/framework/container"
	kernel "github.com/km-arc/go-inject/framework/app"
)

func newRootCmd() *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:   "inject-demo",
		Short: "Dependency injection container demo",
		Long: `inject-demo registers value, factory and class providers in a container
and resolves them from the command line or over HTTP.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil,
		"env file(s) to load (default: .env)")

	// withApp builds the application with the demo module, runs fn and
	// closes the application afterwards.
	withApp := func(fn func(k *kernel.Application) error) error {
		k, err := kernel.New(envFiles...)
		if err != nil {
			return err
		}
		defer func() { _ = k.Close() }()

		if err := k.Use(&app.Module{}); err != nil {
			return err
		}
		return fn(k)
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the demo routes on APP_PORT",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(func(k *kernel.Application) error {
					app.NewHandlers(k.Container).Routes(k.Router())

					ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
					defer stop()
					return k.Run(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "tokens",
			Short: "List registered tokens",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(func(k *kernel.Application) error {
					for _, name := range app.TokenNames(k.Container) {
						fmt.Fprintln(cmd.OutOrStdout(), name)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "greet NAME",
			Short: "Resolve a Greeter and greet NAME",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(func(k *kernel.Application) error {
					g, err := container.Resolve[*app.Greeter](k.Container, app.GreeterClass)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), g.Greet(args[0]))
					return nil
				})
			},
		},
	)
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
