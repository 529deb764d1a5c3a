package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"inventario-cli/internal/history"
	"inventario-cli/internal/validate"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Operaciones sobre el inventario",
	}
	cmd.AddCommand(newItemsListCmd(app))
	cmd.AddCommand(newItemsAddCmd(app))
	cmd.AddCommand(newItemsUpdateCmd(app))
	cmd.AddCommand(newItemsDeleteCmd(app))
	return cmd
}

func newItemsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Listar todos los artículos",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.client()
			if err != nil {
				return writeErr(cmd, err)
			}
			items, err := client.ListItems(cmd.Context())
			if err != nil {
				return writeActionErr(cmd, "Error al cargar items.", err)
			}
			return writeOut(cmd, app, map[string]any{"data": items})
		},
	}
}

func newItemsAddCmd(app *App) *cobra.Command {
	var sku, ean13, quantity string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Añadir un artículo",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.client()
			if err != nil {
				return writeErr(cmd, err)
			}
			// Optimistic duplicate pre-check against the current collection;
			// the server remains authoritative and may still reject.
			items, err := client.ListItems(cmd.Context())
			if err != nil {
				return writeActionErr(cmd, "Error al cargar items.", err)
			}
			vsku, vean, qty, err := validate.NewItem(items, sku, ean13, quantity)
			if err != nil {
				return writeErr(cmd, err)
			}
			created, err := client.CreateItem(cmd.Context(), vsku, vean, qty)
			if err != nil {
				return writeActionErr(cmd, "No se pudo añadir el producto.", err)
			}
			sess, _ := client.Sessions.Load()
			app.auditAppend(cmd, sess.Username, "item.create", created.ID, created)
			return writeOut(cmd, app, map[string]any{"data": created})
		},
	}

	cmd.Flags().StringVar(&sku, "sku", "", "SKU")
	cmd.Flags().StringVar(&ean13, "ean13", "", "EAN13")
	cmd.Flags().StringVar(&quantity, "quantity", "", "Cantidad inicial")
	return cmd
}

func newItemsUpdateCmd(app *App) *cobra.Command {
	var quantity string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Actualizar la cantidad de un artículo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return writeErr(cmd, errBadItemID(args[0]))
			}
			client, err := app.client()
			if err != nil {
				return writeErr(cmd, err)
			}
			items, err := client.ListItems(cmd.Context())
			if err != nil {
				return writeActionErr(cmd, "Error al cargar items.", err)
			}
			current, ok := findItem(items, id)
			if !ok {
				return writeErr(cmd, errItemNotFound(id))
			}
			qty, err := validate.NewQuantity(quantity, current.Quantity)
			if err != nil {
				return writeErr(cmd, err)
			}
			updated, err := client.UpdateItemQuantity(cmd.Context(), id, qty)
			if err != nil {
				return writeActionErr(cmd, "Error al actualizar la cantidad.", err)
			}
			sess, _ := client.Sessions.Load()
			app.auditAppend(cmd, sess.Username, "item.update", id, updated)
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}

	cmd.Flags().StringVar(&quantity, "quantity", "", "Cantidad nueva")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}

func newItemsDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Eliminar un artículo (y sus movimientos, en el servidor)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return writeErr(cmd, errBadItemID(args[0]))
			}
			// Deleting cascades server-side; require the explicit confirmation
			// the TUI asks for interactively.
			if !yes {
				return writeErr(cmd, errConfirmRequired{})
			}
			client, err := app.client()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.DeleteItem(cmd.Context(), id); err != nil {
				return writeActionErr(cmd, "Error al eliminar producto.", err)
			}
			sess, _ := client.Sessions.Load()
			app.auditAppend(cmd, sess.Username, "item.delete", id, nil)
			return writeOut(cmd, app, map[string]any{"data": map[string]int64{"deleted": id}})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirmar la eliminación")
	return cmd
}

func newMovementsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "movements",
		Short: "Listar todos los movimientos",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.client()
			if err != nil {
				return writeErr(cmd, err)
			}
			movs, err := client.ListMovements(cmd.Context())
			if err != nil {
				return writeActionErr(cmd, "No se pudo cargar el historial.", err)
			}
			return writeOut(cmd, app, map[string]any{"data": movs})
		},
	}
}

func newHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history <item-id>",
		Short: "Historial legible de un artículo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return writeErr(cmd, errBadItemID(args[0]))
			}
			client, err := app.client()
			if err != nil {
				return writeErr(cmd, err)
			}
			movs, err := client.ItemHistory(cmd.Context(), id)
			if err != nil {
				return writeActionErr(cmd, "No se pudo cargar el historial.", err)
			}
			loc := history.MadridLocation()
			lines := make([]string, 0, len(movs))
			for _, m := range movs {
				lines = append(lines, history.FormatMovement(m, loc))
			}
			if len(lines) == 0 {
				return writeOut(cmd, app, map[string]any{"data": []string{}, "notice": history.NoMovementsNotice})
			}
			return writeOut(cmd, app, map[string]any{"data": lines})
		},
	}
}

func newAuditCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Acciones realizadas desde esta máquina",
		RunE: func(cmd *cobra.Command, args []string) error {
			audit, err := app.audit()
			if err != nil {
				return writeErr(cmd, err)
			}
			entries, err := audit.Recent(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": entries})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Número máximo de entradas")
	return cmd
}
