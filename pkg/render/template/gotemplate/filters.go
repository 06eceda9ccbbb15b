package gotemplate

import (
	"math"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"
)

func registerDefaultFilters() {
	defaults := map[string]pongo2.FilterFunction{
		"trim":    filterTrim,
		"percent": filterPercent,
		"number":  filterNumber,
	}
	for name, fn := range defaults {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterPercent renders a probability as a rounded whole percentage:
// 0.342 becomes "34%".
func filterPercent(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() || !in.IsNumber() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strconv.Itoa(int(math.Round(in.Float()*100))) + "%"), nil
}

// filterNumber renders a number in its shortest form without exponent.
func filterNumber(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() || !in.IsNumber() {
		return pongo2.AsValue(in.String()), nil
	}
	return pongo2.AsValue(strconv.FormatFloat(in.Float(), 'f', -1, 64)), nil
}
