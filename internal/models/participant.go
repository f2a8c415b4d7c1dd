package models

// Participant represents one person owing a portion of a bill's total.
type Participant struct {
	// ID is unique within the owning bill (UUID format).
	ID string `json:"id"`

	// Name is the display name. Never empty.
	Name string `json:"name"`

	// Address is an optional wallet address.
	Address *string `json:"address,omitempty"`

	// FID is an optional Farcaster ID.
	FID *int64 `json:"fid,omitempty"`

	// Avatar is an optional avatar URL.
	Avatar *string `json:"avatar,omitempty"`

	// Amount is this participant's share of the bill total. Recomputed by
	// split operations, or set directly for custom splits.
	Amount float64 `json:"amount"`

	// Paid reports whether this participant has settled their share.
	Paid bool `json:"paid"`
}

// Clone returns a deep copy of the participant, including the optional
// identity fields.
func (p Participant) Clone() Participant {
	c := p
	if p.Address != nil {
		v := *p.Address
		c.Address = &v
	}
	if p.FID != nil {
		v := *p.FID
		c.FID = &v
	}
	if p.Avatar != nil {
		v := *p.Avatar
		c.Avatar = &v
	}
	return c
}
