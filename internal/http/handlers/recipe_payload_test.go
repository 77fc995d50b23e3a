package handlers

import (
	"encoding/json"
	"testing"
)

func TestNameRefAcceptsStringOrObject(t *testing.T) {
	cases := map[string]nameRef{
		`"Carrot"`:                   {Name: "Carrot"},
		`{"id": 4, "name": "Carrot"}`: {ID: 4, Name: "Carrot"},
		`{"name": "Carrot"}`:          {Name: "Carrot"},
	}
	for raw, want := range cases {
		var got nameRef
		if err := json.Unmarshal([]byte(raw), &got); err != nil {
			t.Fatalf("%s: %v", raw, err)
		}
		if got != want {
			t.Fatalf("%s: got=%+v want=%+v", raw, got, want)
		}
	}

	var bad nameRef
	if err := json.Unmarshal([]byte(`42`), &bad); err == nil {
		t.Fatalf("expected error for numeric reference")
	}
}

func TestRecipeRequestToDomain(t *testing.T) {
	raw := `{
		"title": "Buttered Carrots",
		"prep_time_seconds": 300,
		"yield_quantity": 4,
		"yield_units": "servings",
		"ingredients": [
			{"ingredient": "Carrot", "quantity": 1, "units": {"id": 9, "name": "pound"}, "preparation": "sliced"}
		],
		"steps": [{"id": 3, "ordinal": 1, "instruction": "Boil"}]
	}`
	var req recipeRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	r := req.toDomain()
	if r.Title != "Buttered Carrots" || r.YieldQuantity != 4 {
		t.Fatalf("scalars: %+v", r)
	}
	if r.PrepTimeSeconds == nil || *r.PrepTimeSeconds != 300 || r.CookTimeSeconds != nil {
		t.Fatalf("durations: %v %v", r.PrepTimeSeconds, r.CookTimeSeconds)
	}
	if r.YieldUnits == nil || r.YieldUnits.Name != "servings" {
		t.Fatalf("yield units: %+v", r.YieldUnits)
	}
	if len(r.Ingredients) != 1 || r.Ingredients[0].Ingredient.Name != "Carrot" || r.Ingredients[0].Units.Name != "pound" {
		t.Fatalf("ingredients: %+v", r.Ingredients)
	}
	if r.Ingredients[0].Units.ID != 0 {
		t.Fatalf("reference ids from the body must not be trusted: %+v", r.Ingredients[0].Units)
	}
	if len(r.Steps) != 1 || r.Steps[0].ID != 3 || r.Steps[0].Instruction != "Boil" {
		t.Fatalf("steps: %+v", r.Steps)
	}
}
