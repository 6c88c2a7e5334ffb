package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/teamops/dashboard/display"
	"github.com/teamops/dashboard/structs"
)

func newLoginCommand(opts *options) *cobra.Command {
	var in structs.SignInInput

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Password == "" {
				// read from stdin so the password stays out of shell history
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("password is required")
				}
				in.Password = strings.TrimSpace(line)
			}
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				res, err := e.api.Auth.SignIn(ctx, &in)
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), res.User)
				}
				success(cmd.OutOrStdout(), fmt.Sprintf("Bem-vindo, %s (%s)", res.User.Name, display.RoleLabel(res.User.Role)))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&in.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&in.Password, "password", "p", "", "account password, read from stdin when empty")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				if err := e.store.Clear(ctx); err != nil {
					return err
				}
				success(cmd.OutOrStdout(), "Sessão encerrada")
				return nil
			})
		},
	}
}

func newMeCommand(opts *options) *cobra.Command {
	var filters structs.MetricsFilters

	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in user and their overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				home, err := e.dash.Home(ctx, &filters)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if opts.jsonOutput {
					return printJSON(w, home)
				}

				renderPanel(w, home.User.Name, []field{
					{"Email", home.User.Email},
					{"Perfil", home.RoleLabel},
				})
				rows := make([][]string, 0, len(home.Cards))
				for _, c := range home.Cards {
					rows = append(rows, []string{c.Title, c.Value})
				}
				renderTable(w, []string{"Indicador", "Valor"}, rows)

				links := make([]string, 0, len(home.Links))
				for _, l := range home.Links {
					links = append(links, l.Label)
				}
				fmt.Fprintln(w, mutedStyle.Render(strings.Join(links, " · ")))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&filters.StartDate, "start", "", "period start date")
	cmd.Flags().StringVar(&filters.EndDate, "end", "", "period end date")
	cmd.Flags().StringVar(&filters.TeamID, "team", "", "team id")
	return cmd
}
