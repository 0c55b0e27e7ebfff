package prompts

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/StormyDevil/azure-communication-services-solution/internal/models"
)

// Choice is one entry of a selectable catalogue.
type Choice struct {
	ID      string
	Display string
	Group   string
}

// Resolve resolves a catalogue selection. A supplied identifier that is in
// the catalogue is used directly; one outside it is used anyway with a
// warning (the catalogue is advisory). With no identifier a grouped numbered
// menu is shown and any input that is not an integer in [1, N] resolves to
// the fallback — selection never aborts the pipeline. Stateless: the menu
// and numbering are recomputed on every call.
func Resolve(p Prompter, out io.Writer, catalogue []Choice, supplied, fallback string) string {
	if supplied != "" {
		for _, c := range catalogue {
			if c.ID == supplied {
				return supplied
			}
		}
		fmt.Fprintln(out, color.YellowString("⚠️  %q is not a known identifier; using it as given", supplied))
		return supplied
	}

	ordered := menuOrder(catalogue)
	group := ""
	for i, c := range ordered {
		if c.Group != group {
			group = c.Group
			fmt.Fprintf(out, "\n%s\n", color.CyanString(group))
		}
		fmt.Fprintf(out, "  %2d) %s (%s)\n", i+1, c.Display, c.ID)
	}
	fmt.Fprintln(out)

	raw := p.Input(fmt.Sprintf("Select [1-%d] (default %s):", len(ordered), fallback))
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > len(ordered) {
		return fallback
	}
	return ordered[n-1].ID
}

// menuOrder sorts groups alphabetically and entries within a group by
// display name, giving a stable numbering.
func menuOrder(catalogue []Choice) []Choice {
	ordered := make([]Choice, len(catalogue))
	copy(ordered, catalogue)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Group != ordered[j].Group {
			return ordered[i].Group < ordered[j].Group
		}
		return ordered[i].Display < ordered[j].Display
	})
	return ordered
}

// LocationChoices adapts the static region catalogue for the selector.
func LocationChoices() []Choice {
	locs := models.Locations()
	choices := make([]Choice, 0, len(locs))
	for _, l := range locs {
		choices = append(choices, Choice{ID: l.Code, Display: l.DisplayName, Group: l.Geography})
	}
	return choices
}
