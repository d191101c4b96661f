package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the analytics dashboard summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.Client.GetDashboardStats(cmd.Context())
			if err != nil {
				return fmt.Errorf("get dashboard: %w", err)
			}

			fmt.Println("Dashboard")
			fmt.Printf("  Products:  %d\n", stats.TotalProducts)
			fmt.Printf("  Shipments: %d\n", stats.TotalShipments)
			fmt.Printf("  Orders:    %d (%d pending)\n", stats.TotalOrders, stats.PendingOrders)
			fmt.Printf("  Revenue:   %s\n", humanize.CommafWithDigits(stats.Revenue, 2))
			return nil
		},
	}
}

func newNotificationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notifications",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, unread, err := app.Client.ListNotifications(cmd.Context())
			if err != nil {
				return fmt.Errorf("list notifications: %w", err)
			}

			for _, n := range items {
				marker := " "
				if !n.Read {
					marker = "*"
				}
				when := n.CreatedAt
				if t, err := time.Parse(time.RFC3339, n.CreatedAt); err == nil {
					when = humanize.Time(t)
				}
				fmt.Printf("%s %s - %s (%s)\n", marker, n.Title, n.Body, when)
			}
			fmt.Printf("%d notifications, %d unread\n", len(items), unread)
			return nil
		},
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search products, shipments, and listings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := app.Client.Search(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}

			for _, r := range results {
				fmt.Printf("%-12s %s  %s\n", r.Type, r.ID, r.Title)
			}
			fmt.Printf("%d results\n", len(results))
			return nil
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check backend health",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := app.Client.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("health check: %w", err)
			}

			fmt.Printf("Status: %s\n", status.Status)
			if status.Version != "" {
				fmt.Printf("Version: %s\n", status.Version)
			}
			if status.Uptime != "" {
				fmt.Printf("Uptime: %s\n", status.Uptime)
			}
			return nil
		},
	}
}
