package main

import (
	"fmt"
	"strconv"

	appaccounting "github.com/erp/erpcore/internal/application/accounting"
	appinventory "github.com/erp/erpcore/internal/application/inventory"
	"github.com/erp/erpcore/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *cli) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the access token",
		Example: `  erpctl login --email admin@example.com --password secret
  ERPCTL_PASSWORD=secret erpctl login --email admin@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = app.v.GetString("password")
			}
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password (or ERPCTL_PASSWORD) are required")
			}
			resp, err := app.client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := app.saveToken(resp.AccessToken); err != nil {
				return err
			}
			role := ""
			if resp.User.Role != nil {
				role = resp.User.Role.Name
			}
			fmt.Fprintf(app.out, "Logged in as %s (%s), token expires %s\n",
				resp.User.Email, role, resp.AccessTokenExpiresAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func newAccountsCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{Use: "accounts", Short: "Chart of accounts"}

	var accountType string
	var activeOnly bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts with their balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := app.client.ListAccounts(cmd.Context(), accountType, activeOnly)
			if err != nil {
				return err
			}
			return app.render(accounts, "CODE\tNAME\tTYPE\tDEFAULT\tACTIVE\tBALANCE", func() [][]string {
				rows := make([][]string, 0, len(accounts))
				for _, a := range accounts {
					balance := ""
					if a.Balance != nil {
						balance = valueobject.FormatMoney(*a.Balance)
					}
					rows = append(rows, []string{a.Code, a.Name, a.Type,
						strconv.FormatBool(a.IsDefault), strconv.FormatBool(a.IsActive), balance})
				}
				return rows
			})
		},
	}
	list.Flags().StringVar(&accountType, "type", "", "ASSET, LIABILITY, EQUITY, INCOME or EXPENSE")
	list.Flags().BoolVar(&activeOnly, "active-only", false, "Hide deactivated accounts")

	cmd.AddCommand(list)
	return cmd
}

func newInvoicesCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{Use: "invoices", Short: "Invoices"}

	var req appaccounting.CreateInvoiceRequest
	var subtotal, tax string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an invoice and post its ledger entries",
		Example: `  erpctl invoices create --type INCOME --date 2024-03-15 --client "Acme Corp" --subtotal 100 --tax 15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if req.Subtotal, err = valueobject.ParseMoney(subtotal); err != nil {
				return fmt.Errorf("invalid --subtotal %q", subtotal)
			}
			if req.Tax, err = valueobject.ParseMoney(tax); err != nil {
				return fmt.Errorf("invalid --tax %q", tax)
			}
			inv, err := app.client.CreateInvoice(cmd.Context(), req)
			if err != nil {
				return err
			}
			return app.render(inv, "ID\tNUMBER\tTYPE\tSTATUS\tTOTAL", func() [][]string {
				return [][]string{{inv.ID.String(), inv.Number, inv.Type, inv.Status, valueobject.FormatMoney(inv.Total)}}
			})
		},
	}
	f := create.Flags()
	f.StringVar(&req.Type, "type", "", "INCOME or EXPENSE")
	f.StringVar(&req.Date, "date", "", "Invoice date (YYYY-MM-DD)")
	f.StringVar(&req.DueDate, "due-date", "", "Due date (YYYY-MM-DD)")
	f.StringVar(&req.Number, "number", "", "Invoice number; generated when empty")
	f.StringVar(&req.ClientName, "client", "", "Client or supplier name")
	f.StringVar(&req.ClientEmail, "client-email", "", "Client email")
	f.StringVar(&req.ClientTaxID, "client-tax-id", "", "Client tax id")
	f.StringVar(&subtotal, "subtotal", "", "Subtotal")
	f.StringVar(&tax, "tax", "0", "Tax")
	_ = create.MarkFlagRequired("type")
	_ = create.MarkFlagRequired("date")
	_ = create.MarkFlagRequired("client")
	_ = create.MarkFlagRequired("subtotal")

	status := &cobra.Command{
		Use:   "status <invoice-id> <DRAFT|ISSUED|PAID|CANCELLED>",
		Short: "Change an invoice's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid invoice id %q", args[0])
			}
			inv, err := app.client.UpdateInvoiceStatus(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			return app.render(inv, "ID\tNUMBER\tSTATUS", func() [][]string {
				return [][]string{{inv.ID.String(), inv.Number, inv.Status}}
			})
		},
	}

	cmd.AddCommand(create, status)
	return cmd
}

func newProductsCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{Use: "products", Short: "Products"}

	var filter appinventory.ProductListFilter
	var categoryID, supplierID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List products with their stock status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if filter.CategoryID, err = optionalUUID("category", categoryID); err != nil {
				return err
			}
			if filter.SupplierID, err = optionalUUID("supplier", supplierID); err != nil {
				return err
			}
			page, err := app.client.ListProducts(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if app.jsonOutput() {
				return app.printJSON(page)
			}
			rows := make([][]string, 0, len(page.Items))
			for _, p := range page.Items {
				rows = append(rows, []string{p.SKU, p.Name, strconv.Itoa(p.CurrentStock),
					strconv.Itoa(p.MinStock), p.Status, valueobject.FormatMoney(p.Price)})
			}
			if err := app.table("SKU\tNAME\tSTOCK\tMIN\tSTATUS\tPRICE", rows); err != nil {
				return err
			}
			fmt.Fprintf(app.out, "page %d of %d, %d products\n", page.Meta.Page, page.Meta.TotalPages, page.Meta.Total)
			return nil
		},
	}
	f := list.Flags()
	f.IntVar(&filter.Page, "page", 1, "Page")
	f.IntVar(&filter.Limit, "limit", 20, "Page size")
	f.StringVar(&filter.Search, "search", "", "Name or SKU")
	f.StringVar(&categoryID, "category", "", "Category id")
	f.StringVar(&supplierID, "supplier", "", "Supplier id")
	f.BoolVar(&filter.IncludeInactive, "include-inactive", false, "Include deactivated products")

	cmd.AddCommand(list)
	return cmd
}

func newMovementsCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{Use: "movements", Short: "Stock movements"}

	var req appinventory.RecordMovementRequest
	var productID string
	record := &cobra.Command{
		Use:   "record",
		Short: "Record a stock movement",
		Long: `Record a stock movement. IN adds the quantity, OUT subtracts it and
ADJUSTMENT sets the counted stock.`,
		Example: `  erpctl movements record --product 7c1d... --type OUT --quantity 3 --reason "Order 118"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := uuid.Parse(productID)
			if err != nil {
				return fmt.Errorf("invalid --product %q", productID)
			}
			req.ProductID = id
			result, err := app.client.RecordMovement(cmd.Context(), req)
			if err != nil {
				return err
			}
			return app.render(result, "SKU\tTYPE\tQUANTITY\tBEFORE\tAFTER\tSTATUS", func() [][]string {
				m := result.Movement
				return [][]string{{result.Product.SKU, m.Type, strconv.Itoa(m.Quantity),
					strconv.Itoa(m.StockBefore), strconv.Itoa(m.StockAfter), result.Product.Status}}
			})
		},
	}
	f := record.Flags()
	f.StringVar(&productID, "product", "", "Product id")
	f.StringVar(&req.Type, "type", "", "IN, OUT or ADJUSTMENT")
	f.IntVar(&req.Quantity, "quantity", 0, "Quantity, or the counted stock for ADJUSTMENT")
	f.StringVar(&req.Reason, "reason", "", "Reason")
	f.StringVar(&req.Reference, "reference", "", "External reference")
	_ = record.MarkFlagRequired("product")
	_ = record.MarkFlagRequired("type")
	_ = record.MarkFlagRequired("quantity")
	_ = record.MarkFlagRequired("reason")

	cmd.AddCommand(record)
	return cmd
}

func newAlertsCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{Use: "alerts", Short: "Inventory alerts"}

	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List open alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resolved *bool
			if !all {
				open := false
				resolved = &open
			}
			alerts, err := app.client.ListAlerts(cmd.Context(), resolved)
			if err != nil {
				return err
			}
			return app.render(alerts, "ID\tTYPE\tRESOLVED\tMESSAGE", func() [][]string {
				rows := make([][]string, 0, len(alerts))
				for _, a := range alerts {
					rows = append(rows, []string{a.ID.String(), a.Type, strconv.FormatBool(a.IsResolved), a.Message})
				}
				return rows
			})
		},
	}
	list.Flags().BoolVar(&all, "all", false, "Include resolved alerts")

	resolve := &cobra.Command{
		Use:   "resolve <alert-id>",
		Short: "Mark an alert as resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid alert id %q", args[0])
			}
			alert, err := app.client.ResolveAlert(cmd.Context(), id)
			if err != nil {
				return err
			}
			if app.jsonOutput() {
				return app.printJSON(alert)
			}
			fmt.Fprintf(app.out, "Alert %s resolved\n", alert.ID)
			return nil
		},
	}

	cmd.AddCommand(list, resolve)
	return cmd
}

func newDashboardCmd(app *cli) *cobra.Command {
	var inventory bool
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the accounting dashboard for the current month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if inventory {
				d, err := app.client.InventoryDashboard(cmd.Context())
				if err != nil {
					return err
				}
				return app.render(d, "PRODUCTS\tLOW STOCK\tINVENTORY VALUE\tOPEN ALERTS", func() [][]string {
					return [][]string{{strconv.Itoa(d.TotalProducts), strconv.Itoa(d.LowStockItems),
						valueobject.FormatMoney(d.TotalInventoryValue), strconv.Itoa(len(d.ActiveAlerts))}}
				})
			}

			d, err := app.client.AccountingDashboard(cmd.Context())
			if err != nil {
				return err
			}
			return app.render(d, "PERIOD\tINCOME\tEXPENSES\tNET PROFIT\tPENDING INVOICES", func() [][]string {
				period := d.PeriodStart.Format("2006-01-02") + ".." + d.PeriodEnd.Format("2006-01-02")
				return [][]string{{period, valueobject.FormatMoney(d.TotalIncome), valueobject.FormatMoney(d.TotalExpenses),
					valueobject.FormatMoney(d.NetProfit), strconv.FormatInt(d.PendingInvoiceCount, 10)}}
			})
		},
	}
	cmd.Flags().BoolVar(&inventory, "inventory", false, "Show the inventory dashboard instead")
	return cmd
}

func optionalUUID(flag, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q", flag, value)
	}
	return &id, nil
}
