package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sefazor/eventos-backend/internal/models"
	"github.com/sefazor/eventos-backend/internal/repository"
	"github.com/sefazor/eventos-backend/internal/service"
	"github.com/sefazor/eventos-backend/pkg/database"
	"github.com/sefazor/eventos-backend/pkg/utils"
)

func newCreateAdminCommand() *cobra.Command {
	var req models.RegisterRequest

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a user with the admin role",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Password2 = req.Password1

			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close(db) //nolint:errcheck

			users := service.NewUserService(repository.NewUserRepository(db), utils.NewValidator(), log)
			user, err := users.CreateAdmin(cmd.Context(), req)
			if err != nil {
				var verr *models.ValidationError
				if errors.As(err, &verr) {
					return fmt.Errorf("invalid admin: %s", verr.Error())
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "admin %q created (id %d)\n", user.Username, user.ID)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Username, "username", "", "Username (required)")
	flags.StringVar(&req.Email, "email", "", "Email address (required)")
	flags.StringVar(&req.FirstName, "first-name", "Admin", "First name")
	flags.StringVar(&req.LastName, "last-name", "Eventos", "Last name")
	flags.StringVar(&req.Password1, "password", "", "Password, at least 8 characters (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newPromoteCommand() *cobra.Command {
	var roleName string

	cmd := &cobra.Command{
		Use:   "promote <username>",
		Short: "Change the role of an existing user (admin by default)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := models.ParseRole(roleName)
			if err != nil {
				return err
			}

			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close(db) //nolint:errcheck

			users := service.NewUserService(repository.NewUserRepository(db), utils.NewValidator(), log)
			user, err := users.SetRole(cmd.Context(), args[0], role)
			if errors.Is(err, models.ErrNotFound) {
				return fmt.Errorf("user %q not found", args[0])
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "user %q is now %s\n", user.Username, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&roleName, "role", string(models.RoleAdmin), "Role to assign (admin or normal)")
	return cmd
}
