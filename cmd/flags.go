package cmd

import (
	"fmt"

	"github.com/finfrenzy/finfrenzy/internal/model"

	"github.com/spf13/pflag"
)

// allocationFlags binds one amount flag per budget category.
type allocationFlags struct {
	amounts map[model.Category]*float64
}

// flagName is the command-line name of a category.
func flagName(c model.Category) string {
	if c == model.Miscellaneous {
		return "misc"
	}
	return c.String()
}

func newAllocationFlags(fs *pflag.FlagSet) *allocationFlags {
	f := &allocationFlags{amounts: make(map[model.Category]*float64, len(model.Categories))}
	for _, c := range model.Categories {
		f.amounts[c] = fs.Float64(flagName(c), 0, fmt.Sprintf("Amount for %s", c.Label()))
	}
	return f
}

// allocation returns the amounts as an Allocation.
func (f *allocationFlags) allocation() model.Allocation {
	alloc := make(model.Allocation, len(f.amounts))
	for c, v := range f.amounts {
		alloc[c] = *v
	}
	return alloc
}
