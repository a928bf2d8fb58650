// internal/domain/customer/entity.go
package customer

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of DateOfBirth.
const DateLayout = "2006-01-02"

// Gender codes as stored and sent over the wire.
const (
	GenderMale   = 0
	GenderFemale = 1
)

type Customer struct {
	ID             int64  `json:"id,omitempty" db:"id"`
	FirstName      string `json:"firstName" db:"first_name"`
	LastName       string `json:"lastName" db:"last_name"`
	DateOfBirth    Date   `json:"dateOfBirth" db:"date_of_birth"`
	MobileNo       string `json:"mobileNo" db:"mobile_no"`
	AddressLineOne string `json:"addressLineOne" db:"address_line_one"`
	AddressLineTwo string `json:"addressLineTwo" db:"address_line_two"`
	Age            int    `json:"age" db:"age"`
	Gender         int    `json:"gender" db:"gender"`
	Email          string `json:"email" db:"email"`
}

// FullName is used by the delete prompt.
func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// GenderLabel renders the gender code for listings.
func (c Customer) GenderLabel() string {
	switch c.Gender {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	default:
		return "-"
	}
}

// Date is a calendar day without a time component.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts a plain day or a full RFC3339 timestamp.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return NewDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	return NewDate(t), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
