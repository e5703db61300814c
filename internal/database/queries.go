package database

import (
	"bytes"
	_ "embed"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

//go:embed queries/catalog.yaml
var defaultQueries []byte

// CategoryQueries holds the category statements
type CategoryQueries struct {
	SelectAll               string `mapstructure:"select_all"`
	SelectByID              string `mapstructure:"select_by_id"`
	SelectChildren          string `mapstructure:"select_children"`
	HasChildren             string `mapstructure:"has_children"`
	SelectParents           string `mapstructure:"select_parents"`
	SelectParentsForID      string `mapstructure:"select_parents_for_id"`
	SelectAllWithCount      string `mapstructure:"select_all_with_count"`
	SelectWithCountByID     string `mapstructure:"select_with_count_by_id"`
	SelectChildrenWithCount string `mapstructure:"select_children_with_count"`
	Insert                  string `mapstructure:"insert"`
	Update                  string `mapstructure:"update"`
	Delete                  string `mapstructure:"delete"`
}

// ProductQueries holds the product statements
type ProductQueries struct {
	SelectAll                 string `mapstructure:"select_all"`
	SelectByID                string `mapstructure:"select_by_id"`
	SelectAllViews            string `mapstructure:"select_all_views"`
	SelectViewsByCategory     string `mapstructure:"select_views_by_category"`
	SelectViewsByDateInterval string `mapstructure:"select_views_by_date_interval"`
	SelectViewsByMixedFilter  string `mapstructure:"select_views_by_mixed_filter"`
	Insert                    string `mapstructure:"insert"`
	Update                    string `mapstructure:"update"`
	Delete                    string `mapstructure:"delete"`
}

// Queries is the full set of SQL templates. It is loaded once at startup
// and passed by value, so repositories never share a mutable copy.
type Queries struct {
	Category CategoryQueries `mapstructure:"category"`
	Product  ProductQueries  `mapstructure:"product"`
}

// LoadQueries reads the embedded templates and merges overridePath on top when set
func LoadQueries(overridePath string) (Queries, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(defaultQueries)); err != nil {
		return Queries{}, fmt.Errorf("failed to read default queries: %w", err)
	}

	if overridePath != "" {
		v.SetConfigFile(overridePath)
		if err := v.MergeInConfig(); err != nil {
			return Queries{}, fmt.Errorf("failed to merge queries from %s: %w", overridePath, err)
		}
	}

	var q Queries
	if err := v.Unmarshal(&q); err != nil {
		return Queries{}, fmt.Errorf("failed to decode queries: %w", err)
	}

	if err := q.validate(); err != nil {
		return Queries{}, err
	}

	return q, nil
}

// MustLoadDefaultQueries returns the embedded templates or panics
func MustLoadDefaultQueries() Queries {
	q, err := LoadQueries("")
	if err != nil {
		panic(err)
	}
	return q
}

func (q Queries) validate() error {
	for _, group := range []any{q.Category, q.Product} {
		v := reflect.ValueOf(group)
		for i := 0; i < v.NumField(); i++ {
			if v.Field(i).String() == "" {
				return fmt.Errorf("query %s.%s is empty", v.Type().Name(), v.Type().Field(i).Name)
			}
		}
	}
	return nil
}
