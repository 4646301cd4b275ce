// Package recipebook loads crafting recipes from YAML files.
package recipebook

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"craftvival/internal/domain/survival"

	"github.com/pixil98/go-errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed recipes.schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("recipes.schema.json", schemaJSON)

type document struct {
	Recipes []survival.Recipe `yaml:"recipes"`
}

// Load reads path. An empty path yields the built-in book.
func Load(path string) (*survival.Book, error) {
	if strings.TrimSpace(path) == "" {
		return survival.NewBook(survival.DefaultRecipes())
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipes: %w", err)
	}
	book, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return book, nil
}

func Parse(raw []byte) (*survival.Book, error) {
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("%w: %w", survival.ErrInvalidBook, err)
	}
	if err := schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("%w: %w", survival.ErrInvalidBook, flatten(err))
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", survival.ErrInvalidBook, err)
	}
	return survival.NewBook(doc.Recipes)
}

// flatten turns a schema failure into one entry per leaf cause.
func flatten(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	el := errors.NewErrorList()
	for _, e := range ve.BasicOutput().Errors {
		if e.Error == "" || strings.HasPrefix(e.Error, "doesn't validate with") {
			continue
		}
		loc := e.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		el.Add(fmt.Errorf("%s: %s", loc, e.Error))
	}
	if flat := el.Err(); flat != nil {
		return flat
	}
	return err
}
