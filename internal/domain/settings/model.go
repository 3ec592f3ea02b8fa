package settings

import (
	"encoding/json"
	"time"
)

type Category string

const (
	CategoryNotifications  Category = "notifications"
	CategoryBusinessHours  Category = "business_hours"
	CategoryPaymentMethods Category = "payment_methods"
)

func ParseCategory(s string) (Category, bool) {
	switch c := Category(s); c {
	case CategoryNotifications, CategoryBusinessHours, CategoryPaymentMethods:
		return c, true
	default:
		return "", false
	}
}

// Setting es la fila guardada: una por categoría, valor en JSON.
type Setting struct {
	Category  Category
	Value     json.RawMessage
	UpdatedAt time.Time
}

type Notifications struct {
	Enabled  bool `json:"enabled"`
	NewApp   bool `json:"newApp"`
	Cancel   bool `json:"cancel"`
	Reminder bool `json:"reminder"`
}

type DayHours struct {
	Open    string `json:"open" validate:"required,datetime=15:04"`
	Close   string `json:"close" validate:"required,datetime=15:04"`
	Enabled bool   `json:"enabled"`
}

type BusinessHours struct {
	Mon DayHours `json:"mon"`
	Tue DayHours `json:"tue"`
	Wed DayHours `json:"wed"`
	Thu DayHours `json:"thu"`
	Fri DayHours `json:"fri"`
	Sat DayHours `json:"sat"`
	Sun DayHours `json:"sun"`
}

func (b BusinessHours) days() map[string]DayHours {
	return map[string]DayHours{
		"mon": b.Mon, "tue": b.Tue, "wed": b.Wed, "thu": b.Thu,
		"fri": b.Fri, "sat": b.Sat, "sun": b.Sun,
	}
}

type PaymentMethods struct {
	Pix    bool `json:"pix"`
	Cash   bool `json:"cash"`
	Credit bool `json:"credit"`
	Debit  bool `json:"debit"`
}

// Valores cuando la categoría nunca se guardó.
func DefaultNotifications() Notifications {
	return Notifications{Enabled: true, NewApp: true, Cancel: true, Reminder: true}
}

func DefaultBusinessHours() BusinessHours {
	weekday := DayHours{Open: "08:00", Close: "18:00", Enabled: true}
	return BusinessHours{
		Mon: weekday, Tue: weekday, Wed: weekday, Thu: weekday, Fri: weekday,
		Sat: DayHours{Open: "08:00", Close: "12:00", Enabled: true},
		Sun: DayHours{Open: "08:00", Close: "12:00", Enabled: false},
	}
}

func DefaultPaymentMethods() PaymentMethods {
	return PaymentMethods{Pix: true, Cash: true, Credit: true, Debit: true}
}
