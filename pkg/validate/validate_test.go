package validate_test

import (
	"testing"

	"github.com/paddock-dev/paddock/pkg/validate"
)

type listingInput struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Breed    string `json:"breed"    validate:"required,max=100"`
	Age      string `json:"age"      validate:"required,integer"`
	Price    string `json:"price"    validate:"required,numeric"`
	Location string `json:"location" validate:"nullable,max=255"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(listingInput{
		Name:     "Thunder",
		Breed:    "Arabian",
		Age:      "7",
		Price:    "3500.00",
		Location: "", // nullable — allowed to be empty
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(listingInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	for _, field := range []string{"name", "breed", "age", "price"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %s to be required", field)
		}
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestIntegerRule(t *testing.T) {
	type in struct {
		Age string `json:"age" validate:"required,integer"`
	}
	if errs := validate.Struct(in{Age: "seven"}); !validate.HasErrors(errs) {
		t.Error("expected non-numeric age to fail")
	}
	if errs := validate.Struct(in{Age: "7.5"}); !validate.HasErrors(errs) {
		t.Error("expected fractional age to fail")
	}
	if errs := validate.Struct(in{Age: "7"}); validate.HasErrors(errs) {
		t.Errorf("expected whole age to pass, got: %v", errs)
	}
}

func TestNumericRule(t *testing.T) {
	type in struct {
		Price string `json:"price" validate:"required,numeric"`
	}
	if errs := validate.Struct(in{Price: "a lot"}); !validate.HasErrors(errs) {
		t.Error("expected non-numeric price to fail")
	}
	if errs := validate.Struct(in{Price: "3500.50"}); validate.HasErrors(errs) {
		t.Errorf("expected decimal price to pass, got: %v", errs)
	}
}

func TestMinMaxOnStrings(t *testing.T) {
	type in struct {
		Password string `json:"password" validate:"required,min=8,max=72"`
	}
	if errs := validate.Struct(in{Password: "short"}); !validate.HasErrors(errs) {
		t.Error("expected short password to fail")
	}
	if errs := validate.Struct(in{Password: "long enough secret"}); validate.HasErrors(errs) {
		t.Errorf("expected long password to pass, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Role string `json:"role" validate:"required,in=buyer,seller"`
	}
	if errs := validate.Struct(in{Role: "admin"}); !validate.HasErrors(errs) {
		t.Error("expected out-of-set role to fail")
	}
	if errs := validate.Struct(in{Role: "seller"}); validate.HasErrors(errs) {
		t.Errorf("expected seller to pass: %v", errs)
	}
}

func TestInRuleFollowedByOtherRules(t *testing.T) {
	type in struct {
		Role string `json:"role" validate:"required,in=buyer,seller,max=20"`
	}
	// The in= list must stop at the next rule keyword.
	if errs := validate.Struct(in{Role: "seller"}); validate.HasErrors(errs) {
		t.Errorf("expected seller to pass: %v", errs)
	}
	if errs := validate.Struct(in{Role: "max=20"}); !validate.HasErrors(errs) {
		t.Error("expected literal rule text to fail the in check")
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Phone string `json:"phone" validate:"nullable,min=7"`
	}
	// Empty string — nullable, remaining rules are skipped
	if errs := validate.Struct(in{Phone: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	// Non-empty but too short — should fail
	if errs := validate.Struct(in{Phone: "555"}); !validate.HasErrors(errs) {
		t.Error("expected short phone to fail")
	}
}

func TestGteRule(t *testing.T) {
	type in struct {
		Age int `json:"age" validate:"required,gte=18"`
	}
	if errs := validate.Struct(in{Age: 15}); !validate.HasErrors(errs) {
		t.Error("expected age < 18 to fail")
	}
	if errs := validate.Struct(in{Age: 25}); validate.HasErrors(errs) {
		t.Errorf("expected age 25 to pass, got: %v", errs)
	}
}
