package domain

import "time"

// User is the minimal identity the engine needs: recipient resolution for
// notifications and the role carried by an actor. Account management lives
// outside this service.
type User struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      ActorRole `json:"role"`
	CreatedOn time.Time `json:"created_on"`
}
