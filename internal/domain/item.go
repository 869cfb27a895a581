package domain

import "time"

type ItemStatus string

const (
	ItemStatusAvailable   ItemStatus = "AVAILABLE"
	ItemStatusReserved    ItemStatus = "RESERVED"
	ItemStatusInUse       ItemStatus = "IN_USE"
	ItemStatusMaintenance ItemStatus = "MAINTENANCE"
)

// Item is a piece of shared equipment. Status is a cached projection of the
// most advanced occupying reservation and is written only by the workflow
// engine, except for the Maintenance override set by an admin.
type Item struct {
	ID        int32      `json:"id"`
	Name      string     `json:"name"`
	Location  string     `json:"location"`
	Notes     string     `json:"notes"`
	Status    ItemStatus `json:"status"`
	CreatedOn time.Time  `json:"created_on"`
	UpdatedOn time.Time  `json:"updated_on"`
}

// DerivedItemStatus computes the cached item status from the statuses of the
// item's non-terminal reservations. Maintenance is handled by the caller; it
// overrides whatever this returns.
func DerivedItemStatus(reservationStatuses []ReservationStatus) ItemStatus {
	status := ItemStatusAvailable
	for _, s := range reservationStatuses {
		switch s {
		case ReservationStatusActive:
			return ItemStatusInUse
		case ReservationStatusApproved:
			status = ItemStatusReserved
		}
	}
	return status
}
