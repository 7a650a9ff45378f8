package domain

// ClientInput is the creation payload. Timestamps stay as strings until
// the service normalizes them.
type ClientInput struct {
	Name     string         `json:"name" yaml:"name" validate:"required,max=255"`
	Rut      string         `json:"rut" yaml:"rut" validate:"required,max=255"`
	Salary   int64          `json:"salary" yaml:"salary" validate:"gte=0"`
	Savings  int64          `json:"savings" yaml:"savings" validate:"gte=0"`
	Messages []MessageInput `json:"messages" yaml:"messages" validate:"dive"`
	Debts    []DebtInput    `json:"debts" yaml:"debts" validate:"dive"`
}

type MessageInput struct {
	Text   string `json:"text" yaml:"text" validate:"max=255"`
	Role   string `json:"role" yaml:"role" validate:"required,oneof=client advisor"`
	SentAt string `json:"sentAt" yaml:"sentAt" validate:"required"`
}

type DebtInput struct {
	Institution string `json:"institution" yaml:"institution" validate:"required,max=255"`
	Amount      int64  `json:"amount" yaml:"amount" validate:"gte=0"`
	DueDate     string `json:"dueDate" yaml:"dueDate" validate:"required"`
}
