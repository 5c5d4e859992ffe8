package tickets

import "time"

// Status is the state of a support ticket.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusClosed     Status = "Closed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// Sender identifies who wrote a reply.
type Sender string

const (
	SenderUser  Sender = "User"
	SenderAdmin Sender = "Admin"
)

// Reply is one message in a ticket thread.
type Reply struct {
	ID        string    `json:"id" validate:"required"`
	Sender    Sender    `json:"sender" validate:"required,oneof=User Admin"`
	Message   string    `json:"message" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
}

// Ticket is a support request with an append-only reply thread.
type Ticket struct {
	ID             string    `json:"id" validate:"required"`
	UserID         string    `json:"userId"`
	CustomerName   string    `json:"customerName"`
	CustomerMobile string    `json:"customerMobile"`
	Subject        string    `json:"subject" validate:"required"`
	Message        string    `json:"message"`
	Status         Status    `json:"status" validate:"required"`
	Replies        []Reply   `json:"replies" validate:"dive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewTicket is the input for Create.
type NewTicket struct {
	UserID         string `json:"userId"`
	CustomerName   string `json:"customerName"`
	CustomerMobile string `json:"customerMobile"`
	Subject        string `json:"subject" validate:"required"`
	Message        string `json:"message" validate:"required"`
}
