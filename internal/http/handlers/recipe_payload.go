package handlers

import (
	"bytes"
	"encoding/json"

	types "github.com/mthstanley/stockpot/internal/domain"
)

// nameRef is a reference-data value sent either as a bare name or as {id,name}.
// Only the name is used to resolve it.
type nameRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (n *nameRef) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		*n = nameRef{}
		return json.Unmarshal(trimmed, &n.Name)
	}
	var obj struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return err
	}
	*n = nameRef(obj)
	return nil
}

type stepRequest struct {
	ID          int    `json:"id"`
	Ordinal     int    `json:"ordinal"`
	Instruction string `json:"instruction"`
}

type ingredientLineRequest struct {
	ID          int     `json:"id"`
	Ingredient  nameRef `json:"ingredient"`
	Quantity    int     `json:"quantity"`
	Units       nameRef `json:"units"`
	Preparation string  `json:"preparation"`
}

type recipeRequest struct {
	ID                  int                     `json:"id"`
	Title               string                  `json:"title" binding:"required"`
	Description         *string                 `json:"description"`
	PrepTimeSeconds     *int64                  `json:"prep_time_seconds"`
	CookTimeSeconds     *int64                  `json:"cook_time_seconds"`
	InactiveTimeSeconds *int64                  `json:"inactive_time_seconds"`
	YieldQuantity       int                     `json:"yield_quantity"`
	YieldUnits          *nameRef                `json:"yield_units"`
	Ingredients         []ingredientLineRequest `json:"ingredients"`
	Steps               []stepRequest           `json:"steps"`
}

func (r recipeRequest) toDomain() *types.Recipe {
	out := &types.Recipe{
		ID:                  r.ID,
		Title:               r.Title,
		Description:         r.Description,
		PrepTimeSeconds:     r.PrepTimeSeconds,
		CookTimeSeconds:     r.CookTimeSeconds,
		InactiveTimeSeconds: r.InactiveTimeSeconds,
		YieldQuantity:       r.YieldQuantity,
		Ingredients:         make([]types.RecipeIngredient, 0, len(r.Ingredients)),
		Steps:               make([]types.Step, 0, len(r.Steps)),
	}
	if r.YieldUnits != nil {
		out.YieldUnits = &types.Unit{Name: r.YieldUnits.Name}
	}
	for _, l := range r.Ingredients {
		out.Ingredients = append(out.Ingredients, types.RecipeIngredient{
			ID:          l.ID,
			Ingredient:  types.Ingredient{Name: l.Ingredient.Name},
			Quantity:    l.Quantity,
			Units:       types.Unit{Name: l.Units.Name},
			Preparation: l.Preparation,
		})
	}
	for _, s := range r.Steps {
		out.Steps = append(out.Steps, types.Step{
			ID:          s.ID,
			Ordinal:     s.Ordinal,
			Instruction: s.Instruction,
		})
	}
	return out
}
