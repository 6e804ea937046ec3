package dto

// Wire shapes for the checkout surface. Field names match the client app's
// existing contract (camelCase), not this service's internal naming.

type MenuRequest struct {
	MenuID       string `json:"menuId"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	ImageURL     string `json:"imageUrl"`
	RestaurantID string `json:"restaurantId"`
}

type SlotRequest struct {
	Day      int          `json:"day"`
	MealTime string       `json:"mealTime"`
	Menu     *MenuRequest `json:"menu"`
}

type CreateTransactionRequest struct {
	UserID       string        `json:"userId"`
	FinalPrice   int64         `json:"finalPrice"`
	ShippingCost int64         `json:"shippingCost"`
	Slots        []SlotRequest `json:"slots"`
}

type CreateTransactionResponse struct {
	PaymentURL string `json:"paymentUrl"`
}
