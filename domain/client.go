package domain

import "time"

type Role string

const (
	RoleClient  Role = "client"
	RoleAdvisor Role = "advisor"
)

// Client is the aggregate consumed by the scoring engine. Messages and
// Debts are owned by the client and share its lifecycle.
type Client struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Rut      string    `json:"rut"`
	Salary   int64     `json:"salary"`
	Savings  int64     `json:"savings"`
	Messages []Message `json:"messages"`
	Debts    []Debt    `json:"debts"`
}

type Message struct {
	ID     int64     `json:"id"`
	Text   string    `json:"text"`
	Role   Role      `json:"role"`
	SentAt time.Time `json:"sentAt"`
}

type Debt struct {
	ID          int64     `json:"id"`
	Institution string    `json:"institution"`
	Amount      int64     `json:"amount"`
	DueDate     time.Time `json:"dueDate"`
}
