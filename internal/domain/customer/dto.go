// internal/domain/customer/dto.go
package customer

// ConflictReason names which unique field(s) an add/update collided with.
type ConflictReason string

const (
	ConflictNone           ConflictReason = ""
	ConflictMobile         ConflictReason = "mobile"
	ConflictEmail          ConflictReason = "email"
	ConflictMobileAndEmail ConflictReason = "mobile_and_email"
)

// Reply messages shared by the API and the admin UI.
const (
	MessageSaved    = "Data saved."
	MessageUpdated  = "Data updated successfully."
	MessageAdded    = "Data added successfully."
	MessageDeleted  = "Data deleted."
	MessageNotFound = "Customer data not found."
)

// ReasonFor folds the two uniqueness checks into one reason.
func ReasonFor(mobileTaken, emailTaken bool) ConflictReason {
	switch {
	case mobileTaken && emailTaken:
		return ConflictMobileAndEmail
	case mobileTaken:
		return ConflictMobile
	case emailTaken:
		return ConflictEmail
	default:
		return ConflictNone
	}
}

func (r ConflictReason) Mobile() bool {
	return r == ConflictMobile || r == ConflictMobileAndEmail
}

func (r ConflictReason) Email() bool {
	return r == ConflictEmail || r == ConflictMobileAndEmail
}

// Message is the human text sent next to the reason.
func (r ConflictReason) Message() string {
	switch r {
	case ConflictMobileAndEmail:
		return "Mobile and Email already exists."
	case ConflictMobile:
		return "Mobile already exists."
	case ConflictEmail:
		return "Email already exists."
	default:
		return ""
	}
}

// Valid reports whether r is one of the three conflict cases.
func (r ConflictReason) Valid() bool {
	return r == ConflictMobile || r == ConflictEmail || r == ConflictMobileAndEmail
}
