package cli

import (
	"github.com/spf13/cobra"

	"inventario-cli/internal/validate"
)

func newLoginCmd(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Iniciar sesión contra el backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.client()
			if err != nil {
				return writeErr(cmd, err)
			}
			sess, err := client.Login(cmd.Context(), username, password)
			if err != nil {
				return writeActionErr(cmd, "Usuario o contraseña incorrectos, o error de conexión.", err)
			}
			app.auditAppend(cmd, sess.Username, "login", 0, nil)
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"username": sess.Username}})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Usuario")
	cmd.Flags().StringVar(&password, "password", "", "Contraseña")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cerrar la sesión guardada",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := app.sessions()
			if err != nil {
				return writeErr(cmd, err)
			}
			sess, _ := sessions.Load()
			if err := sessions.Clear(); err != nil {
				return writeErr(cmd, err)
			}
			if sess.Authenticated() {
				app.auditAppend(cmd, sess.Username, "logout", 0, nil)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]bool{"loggedOut": true}})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Mostrar la sesión actual",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := app.sessions()
			if err != nil {
				return writeErr(cmd, err)
			}
			sess, err := sessions.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"authenticated": sess.Authenticated(),
				"username":      sess.Username,
			}})
		},
	}
}

func newChangePasswordCmd(app *App) *cobra.Command {
	var current, next, repeat string

	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Cambiar la contraseña del usuario actual",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate.PasswordChange(current, next, repeat); err != nil {
				return writeErr(cmd, err)
			}
			client, err := app.client()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.ChangePassword(cmd.Context(), current, next); err != nil {
				return writeActionErr(cmd, "No se pudo cambiar la contraseña.", err)
			}
			sess, _ := client.Sessions.Load()
			app.auditAppend(cmd, sess.Username, "password.change", 0, nil)
			return writeOut(cmd, app, map[string]any{"data": map[string]bool{"changed": true}})
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "Contraseña actual")
	cmd.Flags().StringVar(&next, "new", "", "Contraseña nueva")
	cmd.Flags().StringVar(&repeat, "repeat", "", "Repetir contraseña nueva")
	return cmd
}
