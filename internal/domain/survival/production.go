package survival

// CanCraft reports whether every ingredient can be taken from inv and one unit
// of the output would fit. Each check runs against the unmodified inventory.
func CanCraft(inv Inventory, r Recipe) bool {
	return len(missingIngredients(inv, r)) == 0 && inv.CanAdd(ItemAndCount{Item: r.Produces, Count: CraftYield})
}

func missingIngredients(inv Inventory, r Recipe) []ItemAndCount {
	var missing []ItemAndCount
	for _, in := range r.Needed {
		if !inv.CanRemove(in) {
			missing = append(missing, in)
		}
	}
	return missing
}

// Craft resolves output against book and, if feasible, consumes the recipe
// ingredients and adds one unit of output. All mutations are staged on a copy
// and committed together, so a failed craft leaves inv untouched.
func Craft(inv *Inventory, book *Book, output ItemType) (Recipe, error) {
	recipe, ok := book.Lookup(output)
	if !ok {
		return Recipe{}, &CraftError{Output: output, Reason: ErrRecipeNotFound}
	}

	if missing := missingIngredients(*inv, recipe); len(missing) > 0 {
		return recipe, &CraftError{Output: output, Reason: ErrIngredientsMissing, Missing: missing}
	}
	produced := ItemAndCount{Item: recipe.Produces, Count: CraftYield}
	if !inv.CanAdd(produced) {
		return recipe, &CraftError{Output: output, Reason: ErrNoOutputSpace}
	}

	staged := inv.Clone()
	for _, in := range recipe.Needed {
		// Two ingredients can pass the independent checks above while drawing
		// on the same slot; that surfaces here.
		if err := staged.Remove(in); err != nil {
			return recipe, &CraftError{Output: output, Reason: ErrIngredientsMissing, Missing: []ItemAndCount{in}}
		}
	}
	if overflow := staged.Add(produced); overflow != nil {
		return recipe, &CraftError{Output: output, Reason: ErrNoOutputSpace}
	}

	*inv = staged
	return recipe, nil
}

// Craftable lists, in book order, the outputs CanCraft allows right now.
func Craftable(inv Inventory, book *Book) []ItemType {
	out := []ItemType{}
	for _, r := range book.Recipes() {
		if CanCraft(inv, r) {
			out = append(out, r.Produces)
		}
	}
	return out
}
