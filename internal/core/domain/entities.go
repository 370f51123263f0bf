package domain

import (
	"encoding/json"
	"time"
)

// dateLayout is the wire format the backend uses for plain dates.
const dateLayout = "2006-01-02"

type Plan struct {
	ID                  int64    `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description,omitempty"`
	ServiceType         string   `json:"service_type"`
	BasePrice           float64  `json:"base_price"`
	IncludedMeals       []string `json:"included_meals"`
	CanAddBreakfast     bool     `json:"can_add_breakfast"`
	BreakfastAddonPrice float64  `json:"breakfast_addon_price"`
	DurationDays        int      `json:"duration_days"`
	IsActive            bool     `json:"is_active"`
}

type Subscription struct {
	ID                int64           `json:"id"`
	Plan              json.RawMessage `json:"plan"`
	BreakfastIncluded bool            `json:"breakfast_included"`
	TotalPaid         float64         `json:"total_paid"`
	SubscriptionType  string          `json:"subscription_type"`
	StartDate         string          `json:"start_date"`
	AdjustedEndDate   string          `json:"adjusted_end_date"`
	LeaveDays         int             `json:"leave_days"`
	Status            string          `json:"status"`
	DaysRemaining     string          `json:"days_remaining"`
	CreatedAt         time.Time       `json:"created_at"`
}

// RemainingDays computes the whole days left until the adjusted end date,
// clamped at zero. It falls back to 0 when the date fails to parse, so
// display code never has to branch.
func (s Subscription) RemainingDays(now time.Time) int {
	end, err := time.Parse(dateLayout, s.AdjustedEndDate)
	if err != nil {
		return 0
	}
	days := int(end.Sub(now.Truncate(24*time.Hour)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

type Payment struct {
	ID               int64           `json:"id"`
	Subscription     json.RawMessage `json:"subscription"`
	PaymentGateway   string          `json:"payment_gateway"`
	TransactionID    string          `json:"transaction_id"`
	Amount           float64         `json:"amount"`
	AmountINR        string          `json:"amount_inr"`
	Currency         string          `json:"currency"`
	Status           string          `json:"status"`
	GatewayOrderID   string          `json:"gateway_order_id"`
	GatewayPaymentID string          `json:"gateway_payment_id"`
	FailureReason    string          `json:"failure_reason,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type Order struct {
	ID             int64   `json:"id"`
	GatewayOrderID string  `json:"gateway_order_id"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	Status         string  `json:"status"`
}

type Refund struct {
	ID        int64     `json:"id"`
	Payment   int64     `json:"payment"`
	Amount    float64   `json:"amount"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type Leave struct {
	ID             int64           `json:"id"`
	Subscription   json.RawMessage `json:"subscription"`
	LeaveStartDate string          `json:"leave_start_date"`
	LeaveEndDate   string          `json:"leave_end_date"`
	Reason         string          `json:"reason"`
	Status         string          `json:"status"`
	RequestedAt    time.Time       `json:"requested_at"`
	ApprovedAt     *time.Time      `json:"approved_at,omitempty"`
	RejectedAt     *time.Time      `json:"rejected_at,omitempty"`
	AdminComment   string          `json:"admin_comment,omitempty"`
}

// Days returns the inclusive length of the leave in days, or 0 when
// either date fails to parse or the range is inverted.
func (l Leave) Days() int {
	start, err := time.Parse(dateLayout, l.LeaveStartDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(dateLayout, l.LeaveEndDate)
	if err != nil {
		return 0
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 0
	}
	return days
}

type Feedback struct {
	ID            int64      `json:"id"`
	FeedbackType  string     `json:"feedback_type"`
	Subject       string     `json:"subject"`
	Message       string     `json:"message"`
	Rating        *int       `json:"rating,omitempty"`
	MealDate      string     `json:"meal_date,omitempty"`
	MealType      string     `json:"meal_type,omitempty"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	CreatedAt     time.Time  `json:"created_at"`
	AdminResponse string     `json:"admin_response,omitempty"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
}

// NotificationLog is a backend-side delivery record (email/SMS), distinct
// from the in-process Notification type.
type NotificationLog struct {
	ID               int64     `json:"id"`
	NotificationType string    `json:"notification_type"`
	Channel          string    `json:"channel"`
	RecipientEmail   string    `json:"recipient_email,omitempty"`
	RecipientPhone   string    `json:"recipient_phone,omitempty"`
	Subject          string    `json:"subject,omitempty"`
	Status           string    `json:"status"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	SentAt           time.Time `json:"sent_at"`
}
