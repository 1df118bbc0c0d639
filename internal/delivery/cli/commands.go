package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/smartkart/kiosk/internal/domain"
	"github.com/smartkart/kiosk/internal/usecase"
	"github.com/spf13/cobra"
)

// promptConfirmer asks a yes/no question on a terminal. Anything but y/yes
// declines.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func newProductsCommand(o *rootOptions) *cobra.Command {
	var search, category string

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the catalog, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := o.app.Session
			if err := s.ReloadCatalog(ctx); err != nil {
				return err
			}
			s.SetFilter(search, category)

			screen := s.Screen(ctx)
			RenderProducts(cmd.OutOrStdout(), screen.ProductList, screen.Filter)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive match on name or product ID")
	cmd.Flags().StringVarP(&category, "category", "c", "", "exact category name")
	return cmd
}

func newCategoriesCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List product categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := o.app.Session.ReloadCatalog(ctx); err != nil {
				return err
			}
			RenderCategories(cmd.OutOrStdout(), o.app.Session.Screen(ctx).Categories)
			return nil
		},
	}
}

func newLookupCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup PRODUCT_ID",
		Short: "Preview a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			err := o.app.Session.Lookup(ctx, args[0])
			RenderScan(cmd.OutOrStdout(), o.app.Session.Screen(ctx))
			return err
		},
	}
}

func newAddCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add PRODUCT_ID WEIGHT_GRAMS",
		Short: "Add a weighed item to the cart",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			err := o.app.Session.Add(ctx, args[0], args[1])

			screen := o.app.Session.Screen(ctx)
			RenderScan(cmd.OutOrStdout(), screen)
			if err == nil {
				RenderCart(cmd.OutOrStdout(), screen.Cart)
			}
			return err
		},
	}
}

func newCartCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := o.app.Session.RefreshCart(ctx); err != nil {
				return err
			}
			RenderCart(cmd.OutOrStdout(), o.app.Session.Screen(ctx).Cart)
			return nil
		},
	}
}

func newRemoveCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove INDEX",
		Short: "Remove the cart line at INDEX (as listed by 'cart')",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			index, err := usecase.ParseCartIndex(args[0])
			if err != nil {
				return err
			}
			if err := o.app.Session.Remove(ctx, index); err != nil {
				return err
			}
			RenderCart(cmd.OutOrStdout(), o.app.Session.Screen(ctx).Cart)
			return nil
		},
	}
}

func newClearCommand(o *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every item from the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			var confirmer domain.Confirmer = promptConfirmer{in: bufio.NewReader(cmd.InOrStdin()), out: out}
			if yes {
				confirmer = domain.ConfirmFunc(func(string) bool { return true })
			}

			err := o.app.Session.Clear(ctx, confirmer)
			if errors.Is(err, domain.ErrNotConfirmed) {
				fmt.Fprintln(out, "Cart not cleared.")
				return nil
			}
			if err != nil {
				return err
			}
			RenderCart(out, o.app.Session.Screen(ctx).Cart)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newBudgetCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "budget AMOUNT",
		Short: "Check the cart against a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := o.app.Session.SetBudget(ctx, args[0]); err != nil {
				return err
			}
			RenderBudget(cmd.OutOrStdout(), o.app.Session.Screen(ctx).Budget)
			return nil
		},
	}
}

func newCheckoutCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Finalize the order and print the invoice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			err := o.app.Session.Checkout(ctx)

			screen := o.app.Session.Screen(ctx)
			if screen.Dialog != nil {
				RenderDialog(cmd.OutOrStdout(), *screen.Dialog)
				o.app.Session.AcknowledgeDialog()
			}
			RenderInvoice(cmd.OutOrStdout(), screen.Invoice)
			return err
		},
	}
}

func newInvoiceCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "invoice",
		Short: "Print the invoice of the most recent checkout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := o.app.Session.ShowLastInvoice(ctx); err != nil {
				return err
			}
			RenderInvoice(cmd.OutOrStdout(), o.app.Session.Screen(ctx).Invoice)
			return nil
		},
	}
}
