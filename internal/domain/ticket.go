package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusClosed     TicketStatus = "Closed"
)

// ValidStatus reports whether the value is one of the three states.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
)

// ValidPriority reports whether the value is one of the three priorities.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}

// TicketOwner is the expanded owner reference returned with every ticket.
type TicketOwner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Ticket is the aggregate for support requests. The owner reference is
// fixed at creation and never reassigned.
type Ticket struct {
	ID        string
	OwnerID   string
	Name      string
	Issue     string
	Priority  TicketPriority
	Status    TicketStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	// Owner is populated by repository reads that join the users table.
	Owner *TicketOwner
}
