package ledger

import "github.com/google/uuid"

// Direction labels an entry relative to a specific viewing account
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// ViewEntry is a ledger entry projected onto one account's perspective
type ViewEntry struct {
	Entry        *Entry    `json:"entry"`
	Direction    Direction `json:"direction"`
	OtherPartyID uuid.UUID `json:"other_party_id"`
}

// ViewFor projects the entry onto the given account's perspective.
// Returns false when the account is neither sender nor recipient.
func (e *Entry) ViewFor(accountID uuid.UUID) (*ViewEntry, bool) {
	switch accountID {
	case e.SenderID:
		return &ViewEntry{Entry: e, Direction: DirectionDebit, OtherPartyID: e.RecipientID}, true
	case e.RecipientID:
		return &ViewEntry{Entry: e, Direction: DirectionCredit, OtherPartyID: e.SenderID}, true
	default:
		return nil, false
	}
}
