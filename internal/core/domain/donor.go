package domain

import "github.com/google/uuid"

// Sentinel values stored in gift.user_id by the legacy schema. They never
// escape the repository layer; services see a DonorRef.
const (
	cagedDonorSentinel  int64 = -1
	queuedDonorSentinel int64 = -2

	// UnknownDonorID marks gifts the reconciliation job could not attribute
	// to any donor. Such gifts are always routed to the priority report.
	UnknownDonorID int64 = 999999999
)

// DonorRefKind discriminates the three mutually exclusive donor
// representations a gift can point at.
type DonorRefKind int

const (
	// DonorResolved means donor identity lives in the external user directory.
	DonorResolved DonorRefKind = iota
	// DonorCaged means the donor could not be confidently matched; a
	// CagedDonor row holds the raw contact fields pending manual resolution.
	DonorCaged
	// DonorQueued means matching is deferred to the caging worker; a
	// QueuedDonor row holds the raw contact fields.
	DonorQueued
	// DonorUnknown is the reconciliation fallback for unattributable gifts.
	DonorUnknown
)

// DonorRef is the tagged reference a gift holds to its donor. Exactly one of
// {directory user, caged_donor row, queued_donor row} is authoritative for a
// gift at any time, selected by this reference.
type DonorRef struct {
	Kind   DonorRefKind `json:"kind"`
	UserID int64        `json:"userID"` // directory user id; meaningful only when Kind == DonorResolved
}

// ResolvedDonor references a user in the external directory.
func ResolvedDonor(userID int64) DonorRef {
	return DonorRef{Kind: DonorResolved, UserID: userID}
}

// CagedDonorRef references a caged_donor row keyed by the gift id.
func CagedDonorRef() DonorRef { return DonorRef{Kind: DonorCaged} }

// QueuedDonorRef references a queued_donor row keyed by the gift id.
func QueuedDonorRef() DonorRef { return DonorRef{Kind: DonorQueued} }

// UnknownDonor references no donor at all.
func UnknownDonor() DonorRef {
	return DonorRef{Kind: DonorUnknown, UserID: UnknownDonorID}
}

// DecodeDonorRef maps a stored gift.user_id onto the tagged reference.
func DecodeDonorRef(stored int64) DonorRef {
	switch {
	case stored == cagedDonorSentinel:
		return CagedDonorRef()
	case stored == queuedDonorSentinel:
		return QueuedDonorRef()
	case stored == UnknownDonorID:
		return UnknownDonor()
	default:
		return ResolvedDonor(stored)
	}
}

// Encode maps the tagged reference back onto the stored gift.user_id.
func (d DonorRef) Encode() int64 {
	switch d.Kind {
	case DonorCaged:
		return cagedDonorSentinel
	case DonorQueued:
		return queuedDonorSentinel
	case DonorUnknown:
		return UnknownDonorID
	default:
		return d.UserID
	}
}

// IsResolved reports whether the donor is a directory user.
func (d DonorRef) IsResolved() bool { return d.Kind == DonorResolved }

// IsPending reports whether the donor still awaits caging or queue processing.
func (d DonorRef) IsPending() bool {
	return d.Kind == DonorCaged || d.Kind == DonorQueued
}

// PendingDonor holds the raw contact fields captured at donation time for a
// donor that is not yet resolved. The same shape backs both the caged_donor
// and queued_donor tables.
type PendingDonor struct {
	ID                 int64     `json:"id"`
	GiftID             int64     `json:"giftID"`
	GiftSearchableID   uuid.UUID `json:"giftSearchableID"`
	CampaignID         *int64    `json:"campaignID"`
	CustomerID         string    `json:"customerID"`
	EmailAddress       string    `json:"emailAddress"`
	FirstName          string    `json:"firstName"`
	LastName           string    `json:"lastName"`
	Address            string    `json:"address"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Zipcode            string    `json:"zipcode"`
	PhoneNumber        string    `json:"phoneNumber"`
	TimesViewed        int       `json:"timesViewed"`
}

// DirectoryUser is the slice of the external user directory record the
// backend reads and writes.
type DirectoryUser struct {
	ID        int64  `json:"ID"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}
