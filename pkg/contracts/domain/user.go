package domain

// User is a row of the users reference table. The users export is expected
// to be unique on UserID; the joiner rejects tables that are not.
type User struct {
	UserID  string `json:"user_id" validate:"required"`
	Country string `json:"country"`
}
