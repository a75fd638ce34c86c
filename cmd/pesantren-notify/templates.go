package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Abraxas-365/pesantren-notify/asyncx"
	"github.com/Abraxas-365/pesantren-notify/auth"
	"github.com/Abraxas-365/pesantren-notify/msgx"
	"github.com/Abraxas-365/pesantren-notify/msgx/providers/msgxwhatsapp"
	"github.com/Abraxas-365/pesantren-notify/templatex"
)

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect bundled templates and manage them on the provider",
	}

	var remote bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List bundled templates, or the provider's with --remote",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer tw.Flush()

			if !remote {
				fmt.Fprintln(tw, "NAME\tCATEGORY\tPARAMETERS")
				for _, t := range templatex.List() {
					fmt.Fprintf(tw, "%s\t%s\t%v\n", t.Name, t.Category, t.Params)
				}
				return nil
			}

			templates, err := newApp(cfg).client.ListTemplates(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(tw, "NAME\tLANGUAGE\tCATEGORY\tSTATUS")
			for _, t := range templates {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.Name, t.Language, t.Category, t.Status)
			}
			return nil
		},
	}
	list.Flags().BoolVar(&remote, "remote", false, "list templates registered with the business account")

	show := &cobra.Command{
		Use:   "show NAME",
		Short: "Print a bundled template as it would be submitted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := templatex.Get(args[0])
			if !ok {
				return msgx.Registry.New(msgx.ErrTemplateNotFound).WithDetail("template", args[0])
			}
			return printJSON(cmd.OutOrStdout(), t)
		},
	}

	create := &cobra.Command{
		Use:   "create NAME...",
		Short: "Submit bundled templates to the provider for review",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templates := make([]templatex.Template, 0, len(args))
			for _, name := range args {
				t, ok := templatex.Get(name)
				if !ok {
					return msgx.Registry.New(msgx.ErrTemplateNotFound).WithDetail("template", name)
				}
				templates = append(templates, t)
			}

			client := newApp(cfg).client
			created, err := asyncx.AsyncAll(cmd.Context(), templates, func(ctx context.Context, t templatex.Template) (*msgxwhatsapp.CreatedTemplate, error) {
				c, err := client.CreateTemplate(ctx, t)
				if err != nil {
					return nil, fmt.Errorf("create %s: %w", t.Name, err)
				}
				return c, nil
			})
			if err != nil {
				return err
			}

			for i, c := range created {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", templates[i].Name, c.ID, c.Status)
			}
			return nil
		},
	}

	cmd.AddCommand(list, show, create)
	return cmd
}

func newTokenCmd() *cobra.Command {
	var client, scope string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token for a backend service",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := auth.NewTokenVerifier(cfg.API.JWTSecret)
			if err != nil {
				return err
			}
			token, err := v.GenerateToken(client, scope, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&client, "client", "sia-backend", "calling service name")
	cmd.Flags().StringVar(&scope, "scope", "", "optional scope claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "token lifetime")
	return cmd
}
