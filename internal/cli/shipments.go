package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/me/tijara/pkg/platform"
)

func newShipmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shipments",
		Short: "Manage shipping requests",
	}
	cmd.AddCommand(
		newShipmentsListCmd(),
		newShipmentsGetCmd(),
		newShipmentsCreateCmd(),
		newShipmentsUpdateCmd(),
		newShipmentsStatusCmd(),
		newShipmentsDeleteCmd(),
	)
	return cmd
}

func newShipmentsListCmd() *cobra.Command {
	var filter platform.ShipmentFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shipments",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := app.Client.ListShipments(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("list shipments: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tREQUEST\tSTATUS\tTYPE\tTRACKING\tCREATED")
			for _, s := range page.Shipments {
				created := s.CreatedAt
				if t, err := time.Parse(time.RFC3339, s.CreatedAt); err == nil {
					created = humanize.Time(t)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					s.ID, s.RequestNumber, s.Status, s.ShippingType, s.TrackingNumber, created)
			}
			w.Flush()
			fmt.Printf("%d of %d shipments\n", len(page.Shipments), page.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&filter.UserType, "user-type", "", "Filter by requester type (merchant, supplier)")
	return cmd
}

func newShipmentsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one shipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Client.GetShipment(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get shipment: %w", err)
			}

			fmt.Printf("Shipment: %s\n", s.ID)
			fmt.Printf("  Request:  %s\n", s.RequestNumber)
			fmt.Printf("  Status:   %s\n", s.Status)
			fmt.Printf("  Type:     %s\n", s.ShippingType)
			if s.TrackingNumber != "" {
				fmt.Printf("  Tracking: %s\n", s.TrackingNumber)
			}
			if s.DeliveryAddress != nil {
				fmt.Printf("  To:       %s, %s\n", s.DeliveryAddress.City, s.DeliveryAddress.Country)
			}
			if s.EstimatedCost > 0 {
				fmt.Printf("  Cost:     %s %s (estimated)\n", humanize.CommafWithDigits(s.EstimatedCost, 2), s.Currency)
			}
			return nil
		},
	}
}

func newShipmentsCreateCmd() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a shipping request from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(fromFile)
			if err != nil {
				return fmt.Errorf("read shipment file: %w", err)
			}

			var s platform.Shipment
			if err := json.Unmarshal(data, &s); err != nil {
				return fmt.Errorf("parse shipment file: %w", err)
			}

			created, err := app.Client.CreateShipment(cmd.Context(), s)
			if err != nil {
				return fmt.Errorf("create shipment: %w", err)
			}
			fmt.Printf("Shipment created: %s (request %s)\n", created.ID, created.RequestNumber)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFile, "file", "", "Path to shipment JSON")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newShipmentsUpdateCmd() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a shipping request from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(fromFile)
			if err != nil {
				return fmt.Errorf("read shipment file: %w", err)
			}

			var s platform.Shipment
			if err := json.Unmarshal(data, &s); err != nil {
				return fmt.Errorf("parse shipment file: %w", err)
			}

			updated, err := app.Client.UpdateShipment(cmd.Context(), args[0], s)
			if err != nil {
				return fmt.Errorf("update shipment: %w", err)
			}
			fmt.Printf("Shipment updated: %s (%s)\n", updated.ID, updated.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFile, "file", "", "Path to shipment JSON")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newShipmentsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a shipment along its delivery lifecycle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Client.UpdateShipmentStatus(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("update shipment status: %w", err)
			}
			fmt.Printf("Shipment %s is now %s\n", s.ID, s.Status)
			return nil
		},
	}
}

func newShipmentsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Cancel and remove a shipping request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Client.DeleteShipment(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete shipment: %w", err)
			}
			fmt.Printf("Shipment deleted: %s\n", args[0])
			return nil
		},
	}
}
