package validate_test

import (
	"testing"

	"github.com/ruangkopi/cafe/pkg/validate"
)

type registerInput struct {
	Name     string `json:"name"     validate:"required,max=20"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"    validate:"nullable,max=15"`
}

type menuInput struct {
	Category string `json:"category" validate:"required,in=MAINCOURSE|COFFEE|NONCOFFEE|SNACK|DESERT"`
	Price    *int64 `json:"price"    validate:"required,min=0"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "secret1",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(registerInput{})
	for _, field := range []string{"name", "email", "password"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %s to be required", field)
		}
	}
	if _, ok := errs["phone"]; ok {
		t.Error("nullable phone must not be reported")
	}
}

func TestEmailRule(t *testing.T) {
	errs := validate.Struct(registerInput{Name: "a", Email: "not-an-email", Password: "secret1"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
}

func TestLengthRules(t *testing.T) {
	errs := validate.Struct(registerInput{Name: "a", Email: "a@b.co", Password: "123", Phone: "0812345678901234567"})
	if _, ok := errs["password"]; !ok {
		t.Error("expected short password to fail")
	}
	if _, ok := errs["phone"]; !ok {
		t.Error("expected long phone to fail")
	}
}

func TestInRuleAndPointerMin(t *testing.T) {
	neg := int64(-1)
	errs := validate.Struct(menuInput{Category: "TEA", Price: &neg})
	if _, ok := errs["category"]; !ok {
		t.Error("expected unknown category to fail")
	}
	if _, ok := errs["price"]; !ok {
		t.Error("expected negative price to fail")
	}

	zero := int64(0)
	if errs := validate.Struct(menuInput{Category: "COFFEE", Price: &zero}); validate.HasErrors(errs) {
		t.Errorf("expected zero price to pass, got: %v", errs)
	}

	if errs := validate.Struct(menuInput{Category: "COFFEE"}); errs["price"] == "" {
		t.Error("expected missing price to be required")
	}
}

func TestFirstIsStable(t *testing.T) {
	errs := map[string]string{"name": "n", "email": "e"}
	if got := validate.First(errs); got != "e" {
		t.Errorf("expected e, got %q", got)
	}
	if got := validate.First(nil); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}
