package platform

import (
	"context"
	"fmt"
	"net/url"
)

// ShipmentFilter narrows a shipment listing.
type ShipmentFilter struct {
	Status   string
	UserType string
}

func (f ShipmentFilter) query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.UserType != "" {
		q.Set("userType", f.UserType)
	}
	return q
}

// ListShipments fetches shipments matching the filter.
func (c *Client) ListShipments(ctx context.Context, filter ShipmentFilter) (*ShipmentPage, error) {
	const op = "shipments.list"

	env, err := c.Get(ctx, op, "/api/shipments", filter.query())
	if err != nil {
		return nil, err
	}
	page, err := UnmarshalData[ShipmentPage](env)
	if err != nil {
		return nil, newError(op, 0, nil, fmt.Errorf("parse shipments: %w", err))
	}
	return &page, nil
}

// shipmentData is the data payload of single-shipment responses.
type shipmentData struct {
	Shipment Shipment `json:"shipment"`
}

// GetShipment fetches a single shipment by id.
func (c *Client) GetShipment(ctx context.Context, id string) (*Shipment, error) {
	const op = "shipments.get"

	env, err := c.Get(ctx, op, "/api/shipments/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	data, err := UnmarshalData[shipmentData](env)
	if err != nil {
		return nil, newError(op, 0, nil, fmt.Errorf("parse shipment: %w", err))
	}
	return &data.Shipment, nil
}

// CreateShipment submits a new shipping request.
func (c *Client) CreateShipment(ctx context.Context, s Shipment) (*Shipment, error) {
	const op = "shipments.create"

	env, err := c.Post(ctx, op, "/api/shipments", s)
	if err != nil {
		return nil, err
	}
	data, err := UnmarshalData[shipmentData](env)
	if err != nil {
		return nil, newError(op, 0, nil, fmt.Errorf("parse shipment: %w", err))
	}
	return &data.Shipment, nil
}

// UpdateShipment replaces mutable fields of an existing shipment.
func (c *Client) UpdateShipment(ctx context.Context, id string, s Shipment) (*Shipment, error) {
	const op = "shipments.update"

	env, err := c.Put(ctx, op, "/api/shipments/"+url.PathEscape(id), s)
	if err != nil {
		return nil, err
	}
	data, err := UnmarshalData[shipmentData](env)
	if err != nil {
		return nil, newError(op, 0, nil, fmt.Errorf("parse shipment: %w", err))
	}
	return &data.Shipment, nil
}

// UpdateShipmentStatus moves a shipment along its delivery lifecycle.
func (c *Client) UpdateShipmentStatus(ctx context.Context, id, status string) (*Shipment, error) {
	const op = "shipments.status"

	env, err := c.Patch(ctx, op, "/api/shipments/"+url.PathEscape(id)+"/status", map[string]string{"status": status})
	if err != nil {
		return nil, err
	}
	data, err := UnmarshalData[shipmentData](env)
	if err != nil {
		return nil, newError(op, 0, nil, fmt.Errorf("parse shipment: %w", err))
	}
	return &data.Shipment, nil
}

// DeleteShipment cancels and removes a shipping request.
func (c *Client) DeleteShipment(ctx context.Context, id string) error {
	_, err := c.Delete(ctx, "shipments.delete", "/api/shipments/"+url.PathEscape(id))
	return err
}
