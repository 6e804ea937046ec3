package repositories

import (
	"catering-fulfillment-service/internal/domain"
	"encoding/json"
	"fmt"
)

// Storage shape for subscription slots. Domain types stay tag-free; the JSON
// column layout is an adapter concern.
type slotRecord struct {
	DayIndex int         `json:"day_index"`
	MealTime string      `json:"meal_time"`
	Menu     *menuRecord `json:"menu,omitempty"`
}

type menuRecord struct {
	MenuID       string `json:"menu_id"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	ImageURL     string `json:"image_url"`
	RestaurantID string `json:"restaurant_id"`
}

func marshalSlots(slots []domain.Slot) ([]byte, error) {
	records := make([]slotRecord, 0, len(slots))
	for _, s := range slots {
		rec := slotRecord{DayIndex: s.DayIndex, MealTime: s.MealTime}
		if s.Menu != nil {
			rec.Menu = &menuRecord{
				MenuID:       s.Menu.MenuID,
				Name:         s.Menu.Name,
				Price:        s.Menu.Price,
				ImageURL:     s.Menu.ImageURL,
				RestaurantID: s.Menu.RestaurantID,
			}
		}
		records = append(records, rec)
	}

	b, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal slots: %w", err)
	}
	return b, nil
}

func unmarshalSlots(data []byte) ([]domain.Slot, error) {
	var records []slotRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal slots: %w", err)
	}

	slots := make([]domain.Slot, 0, len(records))
	for _, rec := range records {
		s := domain.Slot{DayIndex: rec.DayIndex, MealTime: rec.MealTime}
		if rec.Menu != nil {
			s.Menu = &domain.MenuSnapshot{
				MenuID:       rec.Menu.MenuID,
				Name:         rec.Menu.Name,
				Price:        rec.Menu.Price,
				ImageURL:     rec.Menu.ImageURL,
				RestaurantID: rec.Menu.RestaurantID,
			}
		}
		slots = append(slots, s)
	}

	return slots, nil
}
