package platform

import "encoding/json"

// Role identifies the kind of account a user holds on the platform.
type Role string

const (
	RoleMerchant        Role = "merchant"
	RoleSupplier        Role = "supplier"
	RoleShippingCompany Role = "shipping_company"
	RoleAdmin           Role = "admin"
)

// DashboardRoute returns the UI route a user with this role lands on
// after login. Unrecognized roles fall back to the merchant dashboard.
func (r Role) DashboardRoute() string {
	switch r {
	case RoleMerchant:
		return "/merchant"
	case RoleSupplier:
		return "/supplier"
	case RoleShippingCompany:
		return "/shipping"
	case RoleAdmin:
		return "/admin"
	default:
		return "/merchant"
	}
}

// Valid reports whether r is one of the known platform roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMerchant, RoleSupplier, RoleShippingCompany, RoleAdmin:
		return true
	}
	return false
}

// User is a platform account as returned by the backend.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Role        Role   `json:"role"`
	Avatar      string `json:"avatar,omitempty"`
	Phone       string `json:"phone,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	IsActive    bool   `json:"isActive"`
	IsVerified  bool   `json:"isVerified"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// UserPatch is a partial update of user profile fields. Nil fields are
// left untouched when applied.
type UserPatch struct {
	Name        *string `json:"name,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	CompanyName *string `json:"companyName,omitempty"`
}

// Apply shallow-merges the patch into u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.CompanyName != nil {
		u.CompanyName = *p.CompanyName
	}
}

// Envelope is the standard backend response shape. Error responses may
// carry an error or message string; auth responses additionally carry a
// bearer token.
type Envelope struct {
	Success bool            `json:"success"`
	Token   string          `json:"token,omitempty"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// UnmarshalData extracts and unmarshals the data payload from an envelope.
func UnmarshalData[T any](env *Envelope) (T, error) {
	var out T
	if env == nil || len(env.Data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Credentials is a login request payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is a register request payload.
type Registration struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        Role   `json:"role"`
	Phone       string `json:"phone,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
}

// AuthResult is the outcome of a successful login, register, or refresh.
type AuthResult struct {
	User  User
	Token string
}

// Product is a supplier catalog entry. Fields are backend-owned and
// passed through unmodified.
type Product struct {
	ID            string   `json:"id,omitempty"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Category      string   `json:"category,omitempty"`
	Price         float64  `json:"price"`
	Currency      string   `json:"currency,omitempty"`
	Images        []string `json:"images,omitempty"`
	InStock       bool     `json:"inStock,omitempty"`
	StockQuantity int      `json:"stockQuantity,omitempty"`
	SupplierID    string   `json:"supplierId,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	IsActive      bool     `json:"isActive,omitempty"`
	Views         int      `json:"views,omitempty"`
	CreatedAt     string   `json:"createdAt,omitempty"`
	UpdatedAt     string   `json:"updatedAt,omitempty"`
}

// ProductPage is a paginated product listing.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

// Address is a pickup or delivery location on a shipment.
type Address struct {
	Street       string `json:"street,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zipCode,omitempty"`
	Country      string `json:"country,omitempty"`
	ContactName  string `json:"contactName,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
}

// PackageDetails describes the parcel on a shipment request.
type PackageDetails struct {
	Weight      float64 `json:"weight,omitempty"`
	Length      float64 `json:"length,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	Description string  `json:"description,omitempty"`
	Value       float64 `json:"value,omitempty"`
}

// Shipment statuses as reported by the backend.
const (
	ShipmentPending   = "pending"
	ShipmentConfirmed = "confirmed"
	ShipmentPickedUp  = "picked_up"
	ShipmentInTransit = "in_transit"
	ShipmentDelivered = "delivered"
	ShipmentCancelled = "cancelled"
)

// Shipment is a shipping request.
type Shipment struct {
	ID              string          `json:"id,omitempty"`
	RequestNumber   string          `json:"requestNumber,omitempty"`
	UserID          string          `json:"userId,omitempty"`
	UserType        string          `json:"userType,omitempty"`
	PickupAddress   *Address        `json:"pickupAddress,omitempty"`
	DeliveryAddress *Address        `json:"deliveryAddress,omitempty"`
	PackageDetails  *PackageDetails `json:"packageDetails,omitempty"`
	ShippingType    string          `json:"shippingType,omitempty"`
	Status          string          `json:"status,omitempty"`
	EstimatedCost   float64         `json:"estimatedCost,omitempty"`
	ActualCost      float64         `json:"actualCost,omitempty"`
	Currency        string          `json:"currency,omitempty"`
	TrackingNumber  string          `json:"trackingNumber,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       string          `json:"createdAt,omitempty"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
}

// ShipmentPage is a shipment listing with its total count.
type ShipmentPage struct {
	Shipments []Shipment `json:"shipments"`
	Total     int        `json:"total"`
}

// SupplierOffer is a marketplace listing published by a supplier.
type SupplierOffer struct {
	ID          string  `json:"id,omitempty"`
	SupplierID  string  `json:"supplierId,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price,omitempty"`
	MinQuantity int     `json:"minQuantity,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

// MerchantRequest is a sourcing request published by a merchant.
type MerchantRequest struct {
	ID          string  `json:"id,omitempty"`
	MerchantID  string  `json:"merchantId,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Budget      float64 `json:"budget,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
	OffersCount int     `json:"offersCount,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

// ShippingServiceOffer is a service listing published by a shipping company.
type ShippingServiceOffer struct {
	ID           string  `json:"id,omitempty"`
	CompanyID    string  `json:"companyId,omitempty"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	CoverageArea string  `json:"coverageArea,omitempty"`
	BasePrice    float64 `json:"basePrice,omitempty"`
	CreatedAt    string  `json:"createdAt,omitempty"`
}

// Exhibition is a trade event listed on the marketplace.
type Exhibition struct {
	ID                string `json:"id,omitempty"`
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	Category          string `json:"category,omitempty"`
	StartDate         string `json:"startDate,omitempty"`
	EndDate           string `json:"endDate,omitempty"`
	Location          string `json:"location,omitempty"`
	OrganizerID       string `json:"organizerId,omitempty"`
	OrganizerName     string `json:"organizerName,omitempty"`
	ParticipantsCount int    `json:"participantsCount,omitempty"`
	ImageURL          string `json:"imageUrl,omitempty"`
	Status            string `json:"status,omitempty"`
	CreatedAt         string `json:"createdAt,omitempty"`
}

// Notification is a user-facing platform notification.
type Notification struct {
	ID        string `json:"id"`
	Type      string `json:"type,omitempty"`
	Title     string `json:"title,omitempty"`
	Body      string `json:"body,omitempty"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// DashboardStats is the analytics dashboard payload.
type DashboardStats struct {
	TotalProducts  int     `json:"totalProducts"`
	TotalShipments int     `json:"totalShipments"`
	TotalOrders    int     `json:"totalOrders"`
	Revenue        float64 `json:"revenue"`
	PendingOrders  int     `json:"pendingOrders"`
}

// HealthStatus is the backend health probe payload.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}
