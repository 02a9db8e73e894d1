// Package session implements the per-client session model: a signed token
// carrying identity claims plus a server-side cart keyed by session ID.
package session

// Actor kinds carried in the session's actor claim. A session holds at most
// one identity; an empty actor means anonymous.
const (
	ActorNone   = ""
	ActorUser   = "user"
	ActorVendor = "vendor"
)

// Session is the typed identity variant resolved for every request. SID
// survives login so an anonymous cart follows the shopper through
// authentication; logout rotates it.
type Session struct {
	SID   string
	Actor string // ActorNone | ActorUser | ActorVendor
	ID    uint64 // user or vendor id, 0 when anonymous
	Name  string // user name or vendor business name
	Email string
}

// IsUser reports whether the session carries a shopper identity claim.
func (s Session) IsUser() bool { return s.Actor == ActorUser && s.ID != 0 }

// IsVendor reports whether the session carries a vendor identity claim.
func (s Session) IsVendor() bool { return s.Actor == ActorVendor && s.ID != 0 }

// CartItem is one line of the session cart: a product reference with the
// price and quantity snapshotted by the client. Carts are stored verbatim
// and never validated against live catalog state.
type CartItem struct {
	ProductID uint64  `json:"id"`
	Title     string  `json:"title,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url,omitempty"`
}
