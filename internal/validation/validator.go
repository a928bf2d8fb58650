// internal/validation/validator.go
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"customer-admin/internal/domain/customer"

	"github.com/go-playground/validator/v10"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Values holds the raw text of each field as typed into the form.
type Values struct {
	FirstName      string `form:"firstName" json:"firstName"`
	LastName       string `form:"lastName" json:"lastName"`
	DateOfBirth    string `form:"dateOfBirth" json:"dateOfBirth"`
	MobileNo       string `form:"mobileNo" json:"mobileNo"`
	AddressLineOne string `form:"addressLineOne" json:"addressLineOne"`
	AddressLineTwo string `form:"addressLineTwo" json:"addressLineTwo"`
	Age            string `form:"age" json:"age"`
	Gender         string `form:"gender" json:"gender"`
	Email          string `form:"email" json:"email"`
}

// FromCustomer renders a stored record as form values.
func FromCustomer(c *customer.Customer) Values {
	return Values{
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		DateOfBirth:    c.DateOfBirth.String(),
		MobileNo:       c.MobileNo,
		AddressLineOne: c.AddressLineOne,
		AddressLineTwo: c.AddressLineTwo,
		Age:            strconv.Itoa(c.Age),
		Gender:         strconv.Itoa(c.Gender),
		Email:          c.Email,
	}
}

// Get returns the value of f.
func (v *Values) Get(f Field) string {
	switch f {
	case FirstName:
		return v.FirstName
	case LastName:
		return v.LastName
	case DateOfBirth:
		return v.DateOfBirth
	case MobileNo:
		return v.MobileNo
	case AddressLineOne:
		return v.AddressLineOne
	case AddressLineTwo:
		return v.AddressLineTwo
	case Age:
		return v.Age
	case Gender:
		return v.Gender
	case Email:
		return v.Email
	}
	return ""
}

// Put stores value under f. Unknown fields are ignored.
func (v *Values) Put(f Field, value string) {
	switch f {
	case FirstName:
		v.FirstName = value
	case LastName:
		v.LastName = value
	case DateOfBirth:
		v.DateOfBirth = value
	case MobileNo:
		v.MobileNo = value
	case AddressLineOne:
		v.AddressLineOne = value
	case AddressLineTwo:
		v.AddressLineTwo = value
	case Age:
		v.Age = value
	case Gender:
		v.Gender = value
	case Email:
		v.Email = value
	}
}

// Customer converts values that passed validation into a record.
func (v *Values) Customer() (*customer.Customer, error) {
	dob, err := customer.ParseDate(v.DateOfBirth)
	if err != nil {
		return nil, err
	}
	age, err := strconv.Atoi(v.Age)
	if err != nil {
		return nil, err
	}
	gender, err := strconv.Atoi(v.Gender)
	if err != nil {
		return nil, err
	}
	return &customer.Customer{
		FirstName:      strings.TrimSpace(v.FirstName),
		LastName:       strings.TrimSpace(v.LastName),
		DateOfBirth:    dob,
		MobileNo:       v.MobileNo,
		AddressLineOne: v.AddressLineOne,
		AddressLineTwo: v.AddressLineTwo,
		Age:            age,
		Gender:         gender,
		Email:          v.Email,
	}, nil
}

type rule struct {
	kind Kind
	tag  string
}

// Checks run only on non-empty values; an empty value only raises Required.
var fieldRules = map[Field][]rule{
	FirstName:      {{Pattern, "alpha"}, {MinLength, "min=2"}, {MaxLength, "max=30"}},
	LastName:       {{Pattern, "alpha"}, {MinLength, "min=2"}, {MaxLength, "max=30"}},
	DateOfBirth:    {{Pattern, "notfuture"}},
	MobileNo:       {{Pattern, "number"}, {MinLength, "min=10"}, {MaxLength, "max=17"}},
	AddressLineOne: {{MinLength, "min=4"}, {MaxLength, "max=70"}},
	AddressLineTwo: {{MinLength, "min=4"}, {MaxLength, "max=70"}},
	Age:            {{Pattern, "number"}, {MinLength, "min=1"}, {MaxLength, "max=3"}},
	Gender:         {{Pattern, "oneof=0 1"}},
	Email:          {{Pattern, "emailpattern"}, {MinLength, "min=4"}, {MaxLength, "max=30"}},
}

// Validator evaluates field values with go-playground/validator.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

func New() *Validator {
	return NewWithClock(time.Now)
}

// NewWithClock lets callers pin "now" for the date of birth check.
func NewWithClock(now func() time.Time) *Validator {
	v := &Validator{validate: validator.New(), now: now}

	_ = v.validate.RegisterValidation("emailpattern", func(fl validator.FieldLevel) bool {
		return emailRegex.MatchString(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		d, err := customer.ParseDate(fl.Field().String())
		if err != nil {
			return false
		}
		return !d.After(customer.NewDate(v.now()).Time)
	})

	return v
}

// Check returns the flags raised by value for field f.
func (v *Validator) Check(f Field, value string) ErrorSet {
	var set ErrorSet
	if strings.TrimSpace(value) == "" {
		return set.With(Required)
	}
	for _, r := range fieldRules[f] {
		if err := v.validate.Var(value, r.tag); err != nil {
			set = set.With(r.kind)
		}
	}
	return set
}

// Validate checks every field and returns the failing ones.
func (v *Validator) Validate(values Values) Errors {
	errs := Errors{}
	for _, f := range Fields {
		errs.Set(f, v.Check(f, values.Get(f)))
	}
	return errs
}

// ValidateCustomer re-checks a decoded record, as the backend does before saving.
func (v *Validator) ValidateCustomer(c *customer.Customer) Errors {
	values := FromCustomer(c)
	if c.DateOfBirth.IsZero() {
		values.DateOfBirth = ""
	}
	return v.Validate(values)
}
