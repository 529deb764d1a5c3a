package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"inventario-cli/internal/api"
	"inventario-cli/internal/auditlog"
	"inventario-cli/internal/config"
	"inventario-cli/internal/format"
	"inventario-cli/internal/logger"
	"inventario-cli/internal/session"
	"inventario-cli/internal/tui"
)

// App holds the persistent flags plus the wiring every subcommand shares.
type App struct {
	APIURL     string
	Format     string
	PrettyJSON bool

	cfg      *config.Config
	log      zerolog.Logger
	closeLog func()
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "inventario",
		Short:        "Cliente de inventario (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Interfaz interactiva
  inventario

  # Comandos para scripts
  inventario login --username ana --password secreta
  inventario items list
  inventario items add --sku A1 --ean13 1234567890123 --quantity 5
  inventario history 3
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		app.cfg = cfg
		log, closeLog, err := logger.New(cfg.Log)
		if err != nil {
			return err
		}
		app.log = log
		app.closeLog = closeLog
		return nil
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if app.closeLog != nil {
			app.closeLog()
		}
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api-url", envOr("INVENTARIO_API_URL", ""), "URL base del backend (default: config)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("INVENTARIO_FORMAT", "json"), "Formato de salida (json)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "JSON con sangría")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newMovementsCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newChangePasswordCmd(app))
	cmd.AddCommand(newAuditCmd(app))

	return cmd
}

func runTUI(app *App) error {
	client, err := app.client()
	if err != nil {
		return err
	}
	audit, err := app.audit()
	if err != nil {
		return err
	}
	return tui.Run(client, audit, app.log)
}

func (a *App) apiURL() string {
	if strings.TrimSpace(a.APIURL) != "" {
		return a.APIURL
	}
	return a.cfg.API.URL
}

func (a *App) sessions() (session.Store, error) {
	dir, err := session.DefaultDir()
	if err != nil {
		return session.Store{}, err
	}
	return session.Store{Dir: dir}, nil
}

func (a *App) client() (*api.Client, error) {
	sessions, err := a.sessions()
	if err != nil {
		return nil, err
	}
	c := api.New(a.apiURL(), sessions, a.log)
	c.HTTPClient.Timeout = a.cfg.API.Timeout()
	return c, nil
}

func (a *App) audit() (auditlog.Log, error) {
	dir, err := session.DefaultDir()
	if err != nil {
		return auditlog.Log{}, err
	}
	return auditlog.Log{Dir: dir}, nil
}

// auditAppend is best-effort: audit problems never fail the user action.
func (a *App) auditAppend(cmd *cobra.Command, actor, action string, itemID int64, payload any) {
	audit, err := a.audit()
	if err != nil {
		a.log.Warn().Err(err).Msg("audit unavailable")
		return
	}
	if err := audit.Append(cmd.Context(), actor, action, itemID, payload); err != nil {
		a.log.Warn().Err(err).Str("action", action).Msg("audit append failed")
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

// writeActionErr reports a failure with the single user-facing notice for
// it. api.Notice keeps session errors on their fixed texts and uses the
// action-named generic message for everything else.
func writeActionErr(cmd *cobra.Command, generic string, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), api.Notice(generic, err))
	return err
}
