package domain

import "time"

// Portal partitions accounts into independent populations. The same email
// may hold one account per portal.
type Portal string

const (
	PortalClient Portal = "client"
	PortalBroker Portal = "broker"
)

// ParsePortal validates a raw portal tag.
func ParsePortal(raw string) (Portal, bool) {
	switch Portal(raw) {
	case PortalClient, PortalBroker:
		return Portal(raw), true
	}
	return "", false
}

func (p Portal) String() string {
	return string(p)
}

// User represents a registered account within a portal. Email is stored
// trimmed and lower-cased; (Email, Portal) is unique.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Portal       Portal
	CreatedAt    time.Time
}
