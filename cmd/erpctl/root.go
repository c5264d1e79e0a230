package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/erp/erpcore/internal/interfaces/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

const (
	outputTable = "table"
	outputJSON  = "json"
)

// cli carries the settings shared by every subcommand
type cli struct {
	v      *viper.Viper
	out    io.Writer
	client *client.Client
}

func newRootCmd(out io.Writer) *cobra.Command {
	app := &cli{v: viper.New(), out: out}
	app.v.SetEnvPrefix("ERPCTL")
	app.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	app.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "erpctl",
		Short:         "Command-line client for the ERP API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return app.connect()
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.String("server", "http://localhost:8080", "API server base URL")
	flags.String("token", "", "Access token (overrides the saved login)")
	flags.String("token-file", defaultTokenFile(), "File holding the token saved by login")
	flags.Duration("timeout", 30*time.Second, "Request timeout")
	flags.StringP("output", "o", outputTable, "Output format: table or json")
	for _, name := range []string{"server", "token", "token-file", "timeout", "output"} {
		_ = app.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		newLoginCmd(app),
		newAccountsCmd(app),
		newInvoicesCmd(app),
		newProductsCmd(app),
		newMovementsCmd(app),
		newAlertsCmd(app),
		newDashboardCmd(app),
	)
	return root
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".erpctl-token"
	}
	return filepath.Join(dir, "erpctl", "token")
}

func (a *cli) connect() error {
	switch format := a.v.GetString("output"); format {
	case outputTable, outputJSON:
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	token := a.v.GetString("token")
	if token == "" {
		saved, err := os.ReadFile(a.v.GetString("token-file"))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read token file: %w", err)
		}
		token = strings.TrimSpace(string(saved))
	}

	a.client = client.New(a.v.GetString("server"),
		client.WithTimeout(a.v.GetDuration("timeout")),
		client.WithToken(token))
	return nil
}

func (a *cli) saveToken(token string) error {
	path := a.v.GetString("token-file")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (a *cli) jsonOutput() bool {
	return a.v.GetString("output") == outputJSON
}

func (a *cli) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table writes tab-separated rows aligned in columns
func (a *cli) table(header string, rows [][]string) error {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// render prints v as JSON or as the rows built by rowsOf
func (a *cli) render(v any, header string, rowsOf func() [][]string) error {
	if a.jsonOutput() {
		return a.printJSON(v)
	}
	return a.table(header, rowsOf())
}
