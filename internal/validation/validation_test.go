package validation

import (
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

func validValues() Values {
	return Values{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		DateOfBirth:    "1990-12-10",
		MobileNo:       "0712345678",
		AddressLineOne: "12 Analytical Way",
		AddressLineTwo: "London",
		Age:            "33",
		Gender:         "1",
		Email:          "ada@example.com",
	}
}

func TestValidate_ValidValues(t *testing.T) {
	v := NewWithClock(fixedClock)
	errs := v.Validate(validValues())
	if !errs.Valid() {
		t.Fatalf("expected no errors, got %v", errs.Messages())
	}
}

func TestValidate_EmptyValueIsRequiredOnly(t *testing.T) {
	v := NewWithClock(fixedClock)
	for _, f := range Fields {
		set := v.Check(f, "")
		if set != ErrorSet(Required) {
			t.Errorf("%s: expected only required flag, got %08b", f, set)
		}
		if msg := Message(f, set); !strings.Contains(msg, "cannot be empty") {
			t.Errorf("%s: unexpected required message %q", f, msg)
		}
	}
}

func TestValidate_LengthBounds(t *testing.T) {
	v := NewWithClock(fixedClock)
	tests := []struct {
		field Field
		value string
		kind  Kind
		want  string
	}{
		{FirstName, "A", MinLength, "First name must be at least 2 characters long."},
		{FirstName, strings.Repeat("a", 31), MaxLength, "First name must not be longer than 30 characters."},
		{LastName, "B", MinLength, "Last name must be at least 2 characters long."},
		{LastName, strings.Repeat("b", 31), MaxLength, "Last name must not be longer than 30 characters."},
		{MobileNo, "071234567", MinLength, "Mobile number must be at least 10 characters long."},
		{MobileNo, strings.Repeat("7", 18), MaxLength, "Mobile number cannot be longer than 17 characters."},
		{AddressLineOne, "abc", MinLength, "Address must be at least 4 characters long."},
		{AddressLineTwo, strings.Repeat("x", 71), MaxLength, "Address cannot be longer than 70 characters."},
		{Age, "1234", MaxLength, "Age cannot be longer than 3 characters."},
		{Email, strings.Repeat("a", 20) + "@example.com", MaxLength, "Email cannot be longer than 30 characters."},
	}

	for _, tt := range tests {
		set := v.Check(tt.field, tt.value)
		if set != ErrorSet(tt.kind) {
			t.Errorf("%s=%q: expected only %s, got %08b", tt.field, tt.value, tt.kind, set)
		}
		if got := Message(tt.field, set); got != tt.want {
			t.Errorf("%s=%q: expected %q, got %q", tt.field, tt.value, tt.want, got)
		}
	}
}

func TestValidate_PatternBeatsLength(t *testing.T) {
	v := NewWithClock(fixedClock)

	set := v.Check(FirstName, "A1")
	if !set.Has(Pattern) {
		t.Fatalf("expected pattern flag for digits in a name")
	}
	if got := Message(FirstName, set); got != "First name contain only alphabets." {
		t.Errorf("unexpected message %q", got)
	}

	// too short and not digits at once
	set = v.Check(MobileNo, "07a")
	if !set.Has(Pattern) || !set.Has(MinLength) {
		t.Fatalf("expected pattern and minlength, got %08b", set)
	}
	if got := Message(MobileNo, set); got != "Mobile number must contain only digits." {
		t.Errorf("unexpected message %q", got)
	}

	if got := Message(Email, v.Check(Email, "not-an-email")); got != "Invalid email." {
		t.Errorf("unexpected email message %q", got)
	}
	if got := Message(Age, v.Check(Age, "3a")); got != "Age must contain only digits." {
		t.Errorf("unexpected age message %q", got)
	}
	if got := Message(Gender, v.Check(Gender, "2")); got == "" {
		t.Errorf("expected a gender message for an unknown code")
	}
}

func TestMessage_Priority(t *testing.T) {
	all := ErrorSet(0).With(Required).With(Pattern).With(MinLength).With(MaxLength).With(Exists)

	if got := Message(MobileNo, all); got != "Mobile number cannot be empty." {
		t.Errorf("required should win, got %q", got)
	}
	if got := Message(MobileNo, all.Without(Required)); got != "Mobile number must contain only digits." {
		t.Errorf("pattern should win, got %q", got)
	}
	if got := Message(MobileNo, ErrorSet(MinLength).With(MaxLength)); got != "Mobile number must be at least 10 characters long." {
		t.Errorf("minlength should win, got %q", got)
	}
	if got := Message(MobileNo, ErrorSet(Exists)); got != "Mobile already exists." {
		t.Errorf("unexpected exists message %q", got)
	}
	if got := Message(Email, ErrorSet(Exists)); got != "Email already exists." {
		t.Errorf("unexpected exists message %q", got)
	}
	if got := Message(FirstName, 0); got != "" {
		t.Errorf("expected empty message for a valid field, got %q", got)
	}
}

func TestValidate_DateOfBirthAgainstNow(t *testing.T) {
	now := fixedClock()
	v := NewWithClock(func() time.Time { return now })

	if set := v.Check(DateOfBirth, "2024-06-15"); !set.Empty() {
		t.Errorf("today should be accepted, got %08b", set)
	}
	if set := v.Check(DateOfBirth, "2024-06-14"); !set.Empty() {
		t.Errorf("yesterday should be accepted, got %08b", set)
	}
	set := v.Check(DateOfBirth, "2024-06-16")
	if !set.Has(Pattern) {
		t.Fatalf("tomorrow should be rejected")
	}
	if got := Message(DateOfBirth, set); got != "Date of Birth cannot be in the future." {
		t.Errorf("unexpected message %q", got)
	}

	// the clock is read on every check
	now = now.AddDate(0, 0, 2)
	if set := v.Check(DateOfBirth, "2024-06-16"); !set.Empty() {
		t.Errorf("expected acceptance once the clock moved, got %08b", set)
	}
}

func TestErrors_SetAndFailing(t *testing.T) {
	errs := Errors{}
	errs.Set(Email, ErrorSet(Exists))
	errs.Set(FirstName, ErrorSet(Required))
	errs.Set(Age, 0)

	if errs.Valid() {
		t.Fatal("expected invalid errors")
	}
	failing := errs.Failing()
	if len(failing) != 2 || failing[0] != FirstName || failing[1] != Email {
		t.Errorf("unexpected failing order %v", failing)
	}

	errs.Set(Email, errs[Email].Without(Exists))
	errs.Set(FirstName, 0)
	if !errs.Valid() || len(errs) != 0 {
		t.Errorf("expected empty errors, got %v", errs)
	}
}

func TestValues_Customer(t *testing.T) {
	values := validValues()
	c, err := values.Customer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Age != 33 || c.Gender != 1 || c.DateOfBirth.String() != "1990-12-10" {
		t.Errorf("unexpected conversion %+v", c)
	}

	back := FromCustomer(c)
	if back != values {
		t.Errorf("expected round trip, got %+v", back)
	}
}
