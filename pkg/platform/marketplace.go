package platform

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// MarketplaceFilter narrows marketplace listings.
type MarketplaceFilter struct {
	Category string
	MinPrice float64
	MaxPrice float64
	Status   string
}

func (f MarketplaceFilter) query() url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.MinPrice > 0 {
		q.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	return q
}

// listBestEffort fetches a marketplace listing, returning an empty slice
// when the call fails. Listing reads are non-fatal; writes never swallow
// errors.
func listBestEffort[T any](c *Client, ctx context.Context, op, path string, q url.Values) []T {
	env, err := c.Get(ctx, op, path, q)
	if err != nil {
		c.logger.Debug("marketplace list failed", "op", op, "error", err)
		return nil
	}
	items, err := UnmarshalData[[]T](env)
	if err != nil {
		c.logger.Debug("marketplace list parse failed", "op", op, "error", err)
		return nil
	}
	return items
}

func createItem[T any](c *Client, ctx context.Context, op, path string, item T) (*T, error) {
	env, err := c.Post(ctx, op, path, item)
	if err != nil {
		return nil, err
	}
	out, err := UnmarshalData[T](env)
	if err != nil {
		return nil, newError(op, 0, nil, fmt.Errorf("parse response: %w", err))
	}
	return &out, nil
}

func updateItem[T any](c *Client, ctx context.Context, op, path string, item T) (*T, error) {
	env, err := c.Put(ctx, op, path, item)
	if err != nil {
		return nil, err
	}
	out, err := UnmarshalData[T](env)
	if err != nil {
		return nil, newError(op, 0, nil, fmt.Errorf("parse response: %w", err))
	}
	return &out, nil
}

// --- Supplier offers ---

// ListSupplierOffers fetches supplier offers; best-effort, empty on failure.
func (c *Client) ListSupplierOffers(ctx context.Context, f MarketplaceFilter) []SupplierOffer {
	return listBestEffort[SupplierOffer](c, ctx, "marketplace.offers.list", "/api/marketplace/supplier-offers", f.query())
}

// CreateSupplierOffer publishes a new supplier offer.
func (c *Client) CreateSupplierOffer(ctx context.Context, o SupplierOffer) (*SupplierOffer, error) {
	return createItem(c, ctx, "marketplace.offers.create", "/api/marketplace/supplier-offers", o)
}

// UpdateSupplierOffer updates an existing supplier offer.
func (c *Client) UpdateSupplierOffer(ctx context.Context, id string, o SupplierOffer) (*SupplierOffer, error) {
	return updateItem(c, ctx, "marketplace.offers.update", "/api/marketplace/supplier-offers/"+url.PathEscape(id), o)
}

// DeleteSupplierOffer withdraws a supplier offer.
func (c *Client) DeleteSupplierOffer(ctx context.Context, id string) error {
	_, err := c.Delete(ctx, "marketplace.offers.delete", "/api/marketplace/supplier-offers/"+url.PathEscape(id))
	return err
}

// --- Merchant requests ---

// ListMerchantRequests fetches merchant requests; best-effort, empty on failure.
func (c *Client) ListMerchantRequests(ctx context.Context, f MarketplaceFilter) []MerchantRequest {
	return listBestEffort[MerchantRequest](c, ctx, "marketplace.requests.list", "/api/marketplace/merchant-requests", f.query())
}

// CreateMerchantRequest publishes a new sourcing request.
func (c *Client) CreateMerchantRequest(ctx context.Context, r MerchantRequest) (*MerchantRequest, error) {
	return createItem(c, ctx, "marketplace.requests.create", "/api/marketplace/merchant-requests", r)
}

// UpdateMerchantRequest updates an existing sourcing request.
func (c *Client) UpdateMerchantRequest(ctx context.Context, id string, r MerchantRequest) (*MerchantRequest, error) {
	return updateItem(c, ctx, "marketplace.requests.update", "/api/marketplace/merchant-requests/"+url.PathEscape(id), r)
}

// DeleteMerchantRequest withdraws a sourcing request.
func (c *Client) DeleteMerchantRequest(ctx context.Context, id string) error {
	_, err := c.Delete(ctx, "marketplace.requests.delete", "/api/marketplace/merchant-requests/"+url.PathEscape(id))
	return err
}

// --- Shipping services ---

// ListShippingServices fetches shipping service offers; best-effort, empty on failure.
func (c *Client) ListShippingServices(ctx context.Context, f MarketplaceFilter) []ShippingServiceOffer {
	return listBestEffort[ShippingServiceOffer](c, ctx, "marketplace.services.list", "/api/marketplace/shipping-services", f.query())
}

// CreateShippingService publishes a new shipping service offer.
func (c *Client) CreateShippingService(ctx context.Context, s ShippingServiceOffer) (*ShippingServiceOffer, error) {
	return createItem(c, ctx, "marketplace.services.create", "/api/marketplace/shipping-services", s)
}

// UpdateShippingService updates an existing shipping service offer.
func (c *Client) UpdateShippingService(ctx context.Context, id string, s ShippingServiceOffer) (*ShippingServiceOffer, error) {
	return updateItem(c, ctx, "marketplace.services.update", "/api/marketplace/shipping-services/"+url.PathEscape(id), s)
}

// DeleteShippingService withdraws a shipping service offer.
func (c *Client) DeleteShippingService(ctx context.Context, id string) error {
	_, err := c.Delete(ctx, "marketplace.services.delete", "/api/marketplace/shipping-services/"+url.PathEscape(id))
	return err
}

// --- Exhibitions ---

// ListExhibitions fetches exhibitions; best-effort, empty on failure.
func (c *Client) ListExhibitions(ctx context.Context, f MarketplaceFilter) []Exhibition {
	return listBestEffort[Exhibition](c, ctx, "marketplace.exhibitions.list", "/api/marketplace/exhibitions", f.query())
}

// CreateExhibition publishes a new exhibition.
func (c *Client) CreateExhibition(ctx context.Context, e Exhibition) (*Exhibition, error) {
	return createItem(c, ctx, "marketplace.exhibitions.create", "/api/marketplace/exhibitions", e)
}

// UpdateExhibition updates an existing exhibition.
func (c *Client) UpdateExhibition(ctx context.Context, id string, e Exhibition) (*Exhibition, error) {
	return updateItem(c, ctx, "marketplace.exhibitions.update", "/api/marketplace/exhibitions/"+url.PathEscape(id), e)
}

// DeleteExhibition withdraws an exhibition.
func (c *Client) DeleteExhibition(ctx context.Context, id string) error {
	_, err := c.Delete(ctx, "marketplace.exhibitions.delete", "/api/marketplace/exhibitions/"+url.PathEscape(id))
	return err
}

// --- Favorites ---

// favoritesData is the data payload of the favorites listing.
type favoritesData struct {
	ItemIDs []string `json:"itemIds"`
}

// ListFavorites fetches the ids a user has favorited; best-effort, empty
// on failure.
func (c *Client) ListFavorites(ctx context.Context, userID string) []string {
	env, err := c.Get(ctx, "marketplace.favorites.list", "/api/marketplace/favorites/"+url.PathEscape(userID), nil)
	if err != nil {
		c.logger.Debug("favorites list failed", "error", err)
		return nil
	}
	data, err := UnmarshalData[favoritesData](env)
	if err != nil {
		return nil
	}
	return data.ItemIDs
}

// AddFavorite marks an item as a favorite for the user.
func (c *Client) AddFavorite(ctx context.Context, userID, itemID string) error {
	_, err := c.Post(ctx, "marketplace.favorites.add", "/api/marketplace/favorites", map[string]string{
		"userId": userID,
		"itemId": itemID,
	})
	return err
}

// RemoveFavorite unmarks a favorite.
func (c *Client) RemoveFavorite(ctx context.Context, userID, itemID string) error {
	_, err := c.Delete(ctx, "marketplace.favorites.remove",
		"/api/marketplace/favorites/"+url.PathEscape(userID)+"/"+url.PathEscape(itemID))
	return err
}
