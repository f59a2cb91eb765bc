package members

import (
	"github.com/shopspring/decimal"

	"github.com/gympro/gympro-client/internal/api"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusPending Status = "pending"
)

// Member is owned by the backend; Status is computed there.
type Member struct {
	ID          api.ID          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	JoiningDate string          `json:"joiningDate"` // YYYY-MM-DD
	ExpiryDate  string          `json:"expiryDate"`
	PlanID      api.ID          `json:"planId"`
	Status      Status          `json:"status"`
	DueAmount   decimal.Decimal `json:"dueAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
}

// Form is the create/update body.
type Form struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	JoiningDate string  `json:"joiningDate"`
	PlanID      api.ID  `json:"planId"`
	Password    *string `json:"password,omitempty"`
}

func (m Member) Form() Form {
	return Form{
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		Address:     m.Address,
		JoiningDate: m.JoiningDate,
		PlanID:      m.PlanID,
	}
}
