package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gstbill/internal/app"
	"gstbill/internal/domain"
	"gstbill/internal/service"
)

func (r *runner) newNextNumberCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next-number",
		Short: "Print the number the next invoice would receive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd.Context(), func(a *app.App) error {
				next, err := a.Invoices.NextNumber(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), next)
				return err
			})
		},
	}
}

func (r *runner) newExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all customers and invoices as JSON",
		Example: `  gstbill export --out backup.json
  gstbill export > backup.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd.Context(), func(a *app.App) error {
				bundle, err := a.Transfer.Export(cmd.Context())
				if err != nil {
					return err
				}
				return writeTo(cmd, out, func(w io.Writer) error { return writeJSON(w, bundle) })
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func (r *runner) newImportCmd() *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace customers and/or invoices from a JSON export",
		Long: `Import a JSON document produced by export. Each collection present in the
file replaces the stored one wholesale; a collection missing from the file
is left untouched.`,
		Example: `  gstbill import --in backup.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var bundle domain.TransferBundle
			if err := readJSON(cmd, in, &bundle); err != nil {
				return err
			}
			return r.withApp(cmd.Context(), func(a *app.App) error {
				result, err := a.Transfer.Import(cmd.Context(), &bundle)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), result)
			})
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "input file (default stdin)")
	return cmd
}

func (r *runner) newRegisterCmd() *cobra.Command {
	var (
		out    string
		format string
		query  string
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Write the sales register as CSV or XLSX",
		Example: `  gstbill register --format xlsx --out register.xlsx
  gstbill register --query murugan > murugan.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "csv" && format != "xlsx" {
				return fmt.Errorf("unknown format %q; use csv or xlsx", format)
			}
			filter := service.ListInvoicesInput{Query: query, SortByDate: true}
			return r.withApp(cmd.Context(), func(a *app.App) error {
				return writeTo(cmd, out, func(w io.Writer) error {
					if format == "xlsx" {
						return a.Register.WriteXLSX(cmd.Context(), w, filter)
					}
					return a.Register.WriteCSV(cmd.Context(), w, filter)
				})
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&format, "format", "csv", "csv or xlsx")
	cmd.Flags().StringVarP(&query, "query", "q", "", "match on invoice number, customer name or GSTIN")
	return cmd
}

func writeTo(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func readJSON(cmd *cobra.Command, path string, v interface{}) error {
	var src io.Reader = cmd.InOrStdin()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		src = f
	}
	if err := json.NewDecoder(src).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidBundle, err)
	}
	return nil
}
