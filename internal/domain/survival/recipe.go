package survival

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

type Recipe struct {
	Needed   []ItemAndCount `json:"needed" yaml:"needed"`
	Produces ItemType       `json:"produces" yaml:"produces"`
}

func (r Recipe) validate(idx int) error {
	el := errors.NewErrorList()
	if len(r.Needed) == 0 {
		el.Add(fmt.Errorf("recipe %d: needed is empty", idx))
	}
	if r.Produces.IsNone() {
		el.Add(fmt.Errorf("recipe %d: produces none", idx))
	} else if !r.Produces.Valid() {
		el.Add(fmt.Errorf("recipe %d: %w: %s", idx, ErrUnknownItem, r.Produces))
	}
	for j, in := range r.Needed {
		if in.Item.IsNone() {
			el.Add(fmt.Errorf("recipe %d: ingredient %d is none", idx, j))
		} else if !in.Item.Valid() {
			el.Add(fmt.Errorf("recipe %d: ingredient %d: %w: %s", idx, j, ErrUnknownItem, in.Item))
		}
		if in.Count <= 0 {
			el.Add(fmt.Errorf("recipe %d: ingredient %d count %d", idx, j, in.Count))
		}
	}
	return el.Err()
}

// Book is the ordered, read-only set of recipes. Each output has exactly one
// recipe. A *Book is safe for concurrent readers.
type Book struct {
	recipes  []Recipe
	byOutput map[ItemType]int
}

func NewBook(recipes []Recipe) (*Book, error) {
	b := &Book{
		recipes:  make([]Recipe, 0, len(recipes)),
		byOutput: make(map[ItemType]int, len(recipes)),
	}
	el := errors.NewErrorList()
	for i, r := range recipes {
		if err := r.validate(i); err != nil {
			el.Add(err)
			continue
		}
		if prev, dup := b.byOutput[r.Produces]; dup {
			el.Add(fmt.Errorf("recipe %d: duplicate output %s (first defined by recipe %d)", i, r.Produces, prev))
			continue
		}
		needed := make([]ItemAndCount, len(r.Needed))
		copy(needed, r.Needed)
		b.byOutput[r.Produces] = i
		b.recipes = append(b.recipes, Recipe{Needed: needed, Produces: r.Produces})
	}
	if err := el.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBook, err)
	}
	return b, nil
}

func (b *Book) Lookup(output ItemType) (Recipe, bool) {
	if b == nil {
		return Recipe{}, false
	}
	i, ok := b.byOutput[output]
	if !ok {
		return Recipe{}, false
	}
	r := b.recipes[i]
	r.Needed = append([]ItemAndCount(nil), r.Needed...)
	return r, true
}

func (b *Book) Recipes() []Recipe {
	if b == nil {
		return nil
	}
	out := make([]Recipe, len(b.recipes))
	copy(out, b.recipes)
	return out
}

func (b *Book) Len() int {
	if b == nil {
		return 0
	}
	return len(b.recipes)
}
