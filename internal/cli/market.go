package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/me/tijara/pkg/platform"
)

func newMarketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Browse and publish marketplace listings",
	}
	cmd.AddCommand(
		newMarketOffersCmd(),
		newMarketRequestsCmd(),
		newMarketServicesCmd(),
		newMarketExhibitionsCmd(),
		newMarketFavoritesCmd(),
	)
	return cmd
}

func marketFilterFlags(cmd *cobra.Command, f *platform.MarketplaceFilter) {
	cmd.Flags().StringVar(&f.Category, "category", "", "Filter by category")
	cmd.Flags().Float64Var(&f.MinPrice, "min-price", 0, "Minimum price")
	cmd.Flags().Float64Var(&f.MaxPrice, "max-price", 0, "Maximum price")
}

func relTime(s string) string {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return humanize.Time(t)
	}
	return s
}

func newMarketOffersCmd() *cobra.Command {
	var filter platform.MarketplaceFilter
	var offer platform.SupplierOffer

	cmd := &cobra.Command{
		Use:   "offers",
		Short: "List supplier offers",
		RunE: func(cmd *cobra.Command, args []string) error {
			offers := app.Client.ListSupplierOffers(cmd.Context(), filter)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tPRICE\tCREATED")
			for _, o := range offers {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					o.ID, o.Title, o.Category, humanize.CommafWithDigits(o.Price, 2), relTime(o.CreatedAt))
			}
			w.Flush()
			fmt.Printf("%d offers\n", len(offers))
			return nil
		},
	}
	marketFilterFlags(cmd, &filter)

	create := &cobra.Command{
		Use:   "create",
		Short: "Publish a supplier offer",
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := app.Client.CreateSupplierOffer(cmd.Context(), offer)
			if err != nil {
				return fmt.Errorf("create offer: %w", err)
			}
			fmt.Printf("Offer published: %s\n", created.ID)
			return nil
		},
	}
	create.Flags().StringVar(&offer.Title, "title", "", "Offer title")
	create.Flags().StringVar(&offer.Description, "description", "", "Offer description")
	create.Flags().StringVar(&offer.Category, "category", "", "Offer category")
	create.Flags().Float64Var(&offer.Price, "price", 0, "Unit price")
	create.Flags().IntVar(&offer.MinQuantity, "min-quantity", 0, "Minimum order quantity")
	create.MarkFlagRequired("title")
	cmd.AddCommand(create)

	return cmd
}

func newMarketRequestsCmd() *cobra.Command {
	var filter platform.MarketplaceFilter
	var req platform.MerchantRequest

	cmd := &cobra.Command{
		Use:   "requests",
		Short: "List merchant sourcing requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			requests := app.Client.ListMerchantRequests(cmd.Context(), filter)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tBUDGET\tOFFERS\tCREATED")
			for _, r := range requests {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
					r.ID, r.Title, r.Category, humanize.CommafWithDigits(r.Budget, 2), r.OffersCount, relTime(r.CreatedAt))
			}
			w.Flush()
			fmt.Printf("%d requests\n", len(requests))
			return nil
		},
	}
	marketFilterFlags(cmd, &filter)

	create := &cobra.Command{
		Use:   "create",
		Short: "Publish a sourcing request",
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := app.Client.CreateMerchantRequest(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("create request: %w", err)
			}
			fmt.Printf("Request published: %s\n", created.ID)
			return nil
		},
	}
	create.Flags().StringVar(&req.Title, "title", "", "Request title")
	create.Flags().StringVar(&req.Description, "description", "", "Request description")
	create.Flags().StringVar(&req.Category, "category", "", "Request category")
	create.Flags().Float64Var(&req.Budget, "budget", 0, "Budget")
	create.Flags().IntVar(&req.Quantity, "quantity", 0, "Quantity sought")
	create.MarkFlagRequired("title")
	cmd.AddCommand(create)

	return cmd
}

func newMarketServicesCmd() *cobra.Command {
	var filter platform.MarketplaceFilter

	cmd := &cobra.Command{
		Use:   "services",
		Short: "List shipping service offers",
		RunE: func(cmd *cobra.Command, args []string) error {
			services := app.Client.ListShippingServices(cmd.Context(), filter)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCOVERAGE\tBASE PRICE\tCREATED")
			for _, s := range services {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					s.ID, s.Title, s.CoverageArea, humanize.CommafWithDigits(s.BasePrice, 2), relTime(s.CreatedAt))
			}
			w.Flush()
			fmt.Printf("%d services\n", len(services))
			return nil
		},
	}
	marketFilterFlags(cmd, &filter)
	return cmd
}

func newMarketExhibitionsCmd() *cobra.Command {
	var filter platform.MarketplaceFilter

	cmd := &cobra.Command{
		Use:   "exhibitions",
		Short: "List trade exhibitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			exhibitions := app.Client.ListExhibitions(cmd.Context(), filter)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tLOCATION\tSTATUS\tSTARTS\tPARTICIPANTS")
			for _, e := range exhibitions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
					e.ID, e.Name, e.Location, e.Status, e.StartDate, e.ParticipantsCount)
			}
			w.Flush()
			fmt.Printf("%d exhibitions\n", len(exhibitions))
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.Category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&filter.Status, "status", "", "Filter by status (upcoming, active, ended)")
	return cmd
}

func newMarketFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List your favorited items",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Initialize(cmd.Context()); err != nil {
				return err
			}
			user := app.Session.User()
			if user == nil {
				return fmt.Errorf("not logged in")
			}

			ids := app.Client.ListFavorites(cmd.Context(), user.ID)
			for _, id := range ids {
				fmt.Println(id)
			}
			fmt.Printf("%d favorites\n", len(ids))
			return nil
		},
	}
	return cmd
}
