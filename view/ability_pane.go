package view

import (
	"fmt"
	"sort"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/widgets"
)

// DisplayAPDivisor converts stored action points to displayed ones.
const DisplayAPDivisor = 10

// Ability is a learnable ability.
type Ability struct {
	ID          string
	Name        string
	Description string
	Active      *ActiveAbility
	Bonuses     []Bonus
	Prereqs     *Prereqs
}

// ActiveAbility holds the fields of abilities that are used in combat.
// Abilities without one are passive.
type ActiveAbility struct {
	AP int
}

// Bonus is a stat modifier granted by an ability.
type Bonus struct {
	Kind   string
	Amount int
}

// Prereqs lists what a character needs before learning an ability.
type Prereqs struct {
	Attributes []AttributeAmount
	Levels     []ClassLevel
	TotalLevel int
	Race       string
	Abilities  []string
}

type AttributeAmount struct {
	Attribute string
	Amount    int
}

type ClassLevel struct {
	Class string
	Level int
}

// AbilityLookup resolves ability ids.
type AbilityLookup interface {
	Ability(id string) (*Ability, bool)
}

// AbilitySet is an in-memory AbilityLookup.
type AbilitySet map[string]*Ability

func (s AbilitySet) Ability(id string) (*Ability, bool) {
	a, ok := s[id]
	return a, ok
}

// AddAbilityTextArgs sets the text args describing ab on st. AP values are
// divided by displayAP. Prerequisite abilities that lookup cannot resolve
// are logged and skipped.
func AddAbilityTextArgs(st *canopy.WidgetState, ab *Ability, lookup AbilityLookup, displayAP int) {
	st.AddTextArg("name", ab.Name)
	st.AddTextArg("description", ab.Description)

	if ab.Active != nil {
		st.AddTextArg("active", "true")
		if displayAP <= 0 {
			displayAP = 1
		}
		st.AddTextArg("activate_ap", fmt.Sprint(ab.Active.AP/displayAP))
	} else {
		st.AddTextArg("passive", "true")
	}

	addBonusTextArgs(st, ab.Bonuses)

	p := ab.Prereqs
	if p == nil {
		return
	}
	st.AddTextArg("prereqs", "true")
	for _, a := range p.Attributes {
		st.AddTextArg("prereq_"+a.Attribute, fmt.Sprint(a.Amount))
	}
	for i, l := range p.Levels {
		st.AddTextArg(fmt.Sprintf("prereq_class_%d", i), l.Class)
		st.AddTextArg(fmt.Sprintf("prereq_level_%d", i), fmt.Sprint(l.Level))
	}
	if p.TotalLevel > 0 {
		st.AddTextArg("prereq_total_level", fmt.Sprint(p.TotalLevel))
	}
	if p.Race != "" {
		st.AddTextArg("prereq_race", p.Race)
	}
	for i, id := range p.Abilities {
		var other *Ability
		ok := false
		if lookup != nil {
			other, ok = lookup.Ability(id)
		}
		if !ok {
			canopy.Logger().Warn("prerequisite ability not found", "ability", ab.ID, "prereq", id)
			continue
		}
		st.AddTextArg(fmt.Sprintf("prereq_ability_%d", i), other.Name)
	}
}

// addBonusTextArgs sets bonus_<kind> for each bonus, summing repeats.
func addBonusTextArgs(st *canopy.WidgetState, bonuses []Bonus) {
	if len(bonuses) == 0 {
		return
	}
	totals := map[string]int{}
	var kinds []string
	for _, b := range bonuses {
		if _, ok := totals[b.Kind]; !ok {
			kinds = append(kinds, b.Kind)
		}
		totals[b.Kind] += b.Amount
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		st.AddTextArg("bonus_"+k, fmt.Sprint(totals[k]))
	}
}

// AbilityPane shows the details of one ability in a "details" text area.
// The pane keeps a reference to its current details widget; each rebuild
// replaces it, since dropped widgets cannot be attached again.
type AbilityPane struct {
	ability *Ability
	lookup  AbilityLookup
	details *canopy.Widget
}

func NewAbilityPane(ability *Ability, lookup AbilityLookup) *AbilityPane {
	return &AbilityPane{ability: ability, lookup: lookup}
}

func (p *AbilityPane) Name() string { return "ability_pane" }

// Ability returns the shown ability, or nil.
func (p *AbilityPane) Ability() *Ability { return p.ability }

// SetAbility changes the ability. Call InvalidateChildren on the pane's
// widget to show it.
func (p *AbilityPane) SetAbility(ab *Ability) { p.ability = ab }

// ClearAbility empties the pane on its next rebuild.
func (p *AbilityPane) ClearAbility() { p.ability = nil }

// Details returns the details widget, or nil before the first build.
func (p *AbilityPane) Details() *canopy.Widget { return p.details }

func (p *AbilityPane) OnAdd(w *canopy.Widget) []*canopy.Widget {
	if p.ability == nil {
		return nil
	}
	if p.details == nil || p.details.IsRemoved() {
		p.details = canopy.WithTheme(widgets.NewTextArea(), "details")
	}
	AddAbilityTextArgs(&p.details.State, p.ability, p.lookup, DisplayAPDivisor)
	return []*canopy.Widget{p.details}
}
