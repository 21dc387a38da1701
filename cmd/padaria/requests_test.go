package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestParsePositiveID(t *testing.T) {
	if id, err := parsePositiveID(" 12 ", "id"); err != nil || id != 12 {
		t.Fatalf("parsePositiveID = %d, %v", id, err)
	}
	for _, raw := range []string{"0", "-3", "abc", ""} {
		if _, err := parsePositiveID(raw, "id"); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestParseNonNegativeFloat(t *testing.T) {
	cases := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"", 0, false},
		{"850", 850, false},
		{"12.5", 12.5, false},
		{"-1", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}

	for _, tt := range cases {
		got, err := parseNonNegativeFloat(tt.raw, "target_grams")
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseNonNegativeFloat(%q) err = %v, wantErr %v", tt.raw, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Fatalf("parseNonNegativeFloat(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParsePositiveFloat(t *testing.T) {
	if got, err := parsePositiveFloat("885", "target_grams"); err != nil || got != 885 {
		t.Fatalf("parsePositiveFloat = %v, %v", got, err)
	}
	for _, raw := range []string{"", " ", "0", "-1", "abc", "NaN"} {
		if _, err := parsePositiveFloat(raw, "target_grams"); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestRecipeRequestDropsClientPercentages(t *testing.T) {
	base := 1
	req := recipeRequest{
		Name:      "  Baguete ",
		BaseIndex: &base,
		Lines:     []lineRequest{{IngredientID: 1, UnitID: 1, Quantity: 500}},
	}

	recipe := req.recipe(7)
	if recipe.ID != 7 || recipe.Name != "Baguete" || recipe.BaseIndex == nil || *recipe.BaseIndex != 1 {
		t.Fatalf("unexpected recipe: %+v", recipe)
	}
	if recipe.Lines[0].Percentage != 0 {
		t.Fatalf("percentage should start at zero, got %v", recipe.Lines[0].Percentage)
	}
}

func TestValidationMessageUsesJSONNames(t *testing.T) {
	v := newValidator()

	err := v.Struct(recipeRequest{Lines: []lineRequest{{Quantity: -1}}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := validationMessage(err)
	for _, expected := range []string{"name é obrigatório", "ingredients[0].quantity"} {
		if !strings.Contains(msg, expected) {
			t.Fatalf("expected %q in %q", expected, msg)
		}
	}
}

func TestPriceCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"price",
		"--env-file", filepath.Join(t.TempDir(), "none.env"),
		"--recipe-cost", "8.75",
		"--packaging", "0.5",
		"--extra", "1",
		"--profit", "50",
		"--weight", "1000",
	})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	if err := Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, expected := range []string{"Preço sugerido: 15.38", "Custo total: 10.25", "Markup: 50.00%"} {
		if !strings.Contains(out.String(), expected) {
			t.Fatalf("expected %q in output:\n%s", expected, out.String())
		}
	}
}
