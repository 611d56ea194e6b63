package domain

// OrderStatus is the closed set of order states.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusInTransit  OrderStatus = "in_transit"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusPending    OrderStatus = "pending"
)

// Valid reports whether s is one of the known order states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusInTransit, OrderStatusDelivered,
		OrderStatusCancelled, OrderStatusPending:
		return true
	}
	return false
}

// OrderForm is the contact block captured at checkout.
type OrderForm struct {
	FullName string `bson:"fullName" json:"fullName" validate:"required"`
	Email    string `bson:"email" json:"email" validate:"required,email"`
	Phone    string `bson:"phone" json:"phone" validate:"required"`
	Message  string `bson:"message,omitempty" json:"message,omitempty"`
}

// OrderLine is one purchased line item, price snapshotted at add time.
type OrderLine struct {
	ProductID string  `bson:"id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Wattage   string  `bson:"wattage,omitempty" json:"wattage,omitempty"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
}

// Order represents a captured order. TotalAmount is computed from the lines
// unless an admin overrides it.
type Order struct {
	Meta             `bson:",inline"`
	FormData         OrderForm   `bson:"formData" json:"formData"`
	SelectedProducts []OrderLine `bson:"selectedProducts" json:"selectedProducts"`
	TotalAmount      float64     `bson:"totalAmount" json:"totalAmount"`
	Status           OrderStatus `bson:"status" json:"status"`
}

// LineTotal returns the sum of price*quantity over the order lines.
func (o *Order) LineTotal() float64 {
	var total float64
	for _, line := range o.SelectedProducts {
		total += line.Price * float64(line.Quantity)
	}
	return total
}
