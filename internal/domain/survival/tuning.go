package survival

const (
	DefaultInventorySize = 5
	DefaultStackLimit    = 5

	HarvestYield = 1
	CraftYield   = 1
)

func DefaultRecipes() []Recipe {
	return []Recipe{
		{
			Needed:   []ItemAndCount{{Item: Twig, Count: 1}, {Item: Flint, Count: 1}},
			Produces: Axe,
		},
	}
}
