package utils

import (
	"reflect"
	"testing"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "jane.doe+tag@example.com"}
	invalid := []string{"", "plain", "a@b", "@example.com", "a b@c.co"}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	if err := ValidatePhoneNumber("081234567890", "ID"); err != nil {
		t.Errorf("expected valid ID number: %v", err)
	}
	if err := ValidatePhoneNumber("123", "ID"); err == nil {
		t.Errorf("expected short number to be invalid")
	}
	if err := ValidatePhoneNumber("not-a-number", "ID"); err == nil {
		t.Errorf("expected garbage to be invalid")
	}
}

func TestUniqueSlice(t *testing.T) {
	got := UniqueSlice([]int{3, 1, 3, 2, 1})
	if !reflect.DeepEqual(got, []int{3, 1, 2}) {
		t.Fatalf("UniqueSlice = %v", got)
	}
	if got := UniqueSlice([]string{}); len(got) != 0 {
		t.Fatalf("expected empty result; got %v", got)
	}
}

func TestHashAndComparePassword(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := ComparePassword(string(hashed), "s3cret"); err != nil {
		t.Fatalf("ComparePassword: %v", err)
	}
	if err := ComparePassword(string(hashed), "wrong"); err == nil {
		t.Fatalf("expected mismatch error")
	}
}
