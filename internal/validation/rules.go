// internal/validation/rules.go
package validation

import "sort"

// Field is a form/payload field, named as on the wire.
type Field string

const (
	FirstName      Field = "firstName"
	LastName       Field = "lastName"
	DateOfBirth    Field = "dateOfBirth"
	MobileNo       Field = "mobileNo"
	AddressLineOne Field = "addressLineOne"
	AddressLineTwo Field = "addressLineTwo"
	Age            Field = "age"
	Gender         Field = "gender"
	Email          Field = "email"
)

// Fields lists every validated field in display order.
var Fields = []Field{
	FirstName, LastName, DateOfBirth, MobileNo,
	AddressLineOne, AddressLineTwo, Age, Gender, Email,
}

// Kind is a single failure flag. Lower values win when picking a message.
type Kind uint8

const (
	Required Kind = 1 << iota
	Pattern
	MinLength
	MaxLength
	Exists
)

var kindOrder = []Kind{Required, Pattern, MinLength, MaxLength, Exists}

func (k Kind) String() string {
	switch k {
	case Required:
		return "required"
	case Pattern:
		return "pattern"
	case MinLength:
		return "minlength"
	case MaxLength:
		return "maxlength"
	case Exists:
		return "exists"
	}
	return "unknown"
}

// ErrorSet is the set of failure flags raised on one field.
type ErrorSet uint8

func (s ErrorSet) Has(k Kind) bool { return s&ErrorSet(k) != 0 }

func (s ErrorSet) With(k Kind) ErrorSet { return s | ErrorSet(k) }

func (s ErrorSet) Without(k Kind) ErrorSet { return s &^ ErrorSet(k) }

func (s ErrorSet) Empty() bool { return s == 0 }

// Top returns the highest priority flag, or 0 when the set is empty.
func (s ErrorSet) Top() Kind {
	for _, k := range kindOrder {
		if s.Has(k) {
			return k
		}
	}
	return 0
}

// Errors maps each failing field to its flags. Fields that pass are absent.
type Errors map[Field]ErrorSet

func (e Errors) Valid() bool {
	for _, s := range e {
		if !s.Empty() {
			return false
		}
	}
	return true
}

// Set replaces the flags of f, dropping the entry when s is empty.
func (e Errors) Set(f Field, s ErrorSet) {
	if s.Empty() {
		delete(e, f)
		return
	}
	e[f] = s
}

// Messages renders one message per failing field.
func (e Errors) Messages() map[string]string {
	out := make(map[string]string, len(e))
	for f, s := range e {
		if msg := Message(f, s); msg != "" {
			out[string(f)] = msg
		}
	}
	return out
}

// Failing returns the failing fields in display order.
func (e Errors) Failing() []Field {
	out := make([]Field, 0, len(e))
	for f, s := range e {
		if !s.Empty() {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return fieldIndex(out[i]) < fieldIndex(out[j]) })
	return out
}

func fieldIndex(f Field) int {
	for i, candidate := range Fields {
		if candidate == f {
			return i
		}
	}
	return len(Fields)
}

var messages = map[Field]map[Kind]string{
	FirstName: {
		Required:  "First Name cannot be empty.",
		Pattern:   "First name contain only alphabets.",
		MinLength: "First name must be at least 2 characters long.",
		MaxLength: "First name must not be longer than 30 characters.",
	},
	LastName: {
		Required:  "Last Name cannot be empty.",
		Pattern:   "Last name contain only alphabets.",
		MinLength: "Last name must be at least 2 characters long.",
		MaxLength: "Last name must not be longer than 30 characters.",
	},
	DateOfBirth: {
		Required: "Date of Birth cannot be empty.",
		Pattern:  "Date of Birth cannot be in the future.",
	},
	MobileNo: {
		Required:  "Mobile number cannot be empty.",
		Pattern:   "Mobile number must contain only digits.",
		MinLength: "Mobile number must be at least 10 characters long.",
		MaxLength: "Mobile number cannot be longer than 17 characters.",
		Exists:    "Mobile already exists.",
	},
	AddressLineOne: {
		Required:  "Address cannot be empty.",
		MinLength: "Address must be at least 4 characters long.",
		MaxLength: "Address cannot be longer than 70 characters.",
	},
	AddressLineTwo: {
		Required:  "Address cannot be empty.",
		MinLength: "Address must be at least 4 characters long.",
		MaxLength: "Address cannot be longer than 70 characters.",
	},
	Age: {
		Required:  "Age cannot be empty.",
		Pattern:   "Age must contain only digits.",
		MinLength: "Age must be at least 1 character long.",
		MaxLength: "Age cannot be longer than 3 characters.",
	},
	Gender: {
		Required: "Gender cannot be empty.",
		Pattern:  "Gender must be Male or Female.",
	},
	Email: {
		Required:  "Email cannot be empty.",
		Pattern:   "Invalid email.",
		MinLength: "Email must be at least 4 characters long.",
		MaxLength: "Email cannot be longer than 30 characters.",
		Exists:    "Email already exists.",
	},
}

// Message picks the text for the highest priority flag in s:
// required, then pattern, then too short, then too long, then exists.
// It returns "" when s is empty or f is unknown.
func Message(f Field, s ErrorSet) string {
	texts, ok := messages[f]
	if !ok {
		return ""
	}
	for _, k := range kindOrder {
		if s.Has(k) {
			if msg, ok := texts[k]; ok {
				return msg
			}
		}
	}
	return ""
}
