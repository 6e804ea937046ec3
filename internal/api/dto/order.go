package dto

import "time"

type DailyOrderResponse struct {
	OrderID        string    `json:"orderId"`
	SubscriptionID string    `json:"subscriptionId"`
	DayIndex       int       `json:"day"`
	MealTime       string    `json:"mealTime"`
	MenuID         string    `json:"menuId"`
	MenuName       string    `json:"menuName"`
	MenuPrice      int64     `json:"menuPrice"`
	RestaurantID   string    `json:"restaurantId"`
	DeliveryDate   time.Time `json:"deliveryDate"`
	ShippingFee    int64     `json:"shippingFee"`
	Status         string    `json:"status"`
	DriverID       string    `json:"driverId,omitempty"`
	DriverName     string    `json:"driverName,omitempty"`
}

type ListDailyOrdersResponse struct {
	Orders []DailyOrderResponse `json:"orders"`
}
