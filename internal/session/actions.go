package session

import (
	"fmt"
	"sort"
	"strings"
)

// ActionConfig carries the site-specific selector data the dispatcher works
// with. Selectors are configuration, not dispatcher logic: deployments can
// swap them without touching the action sequencing.
type ActionConfig struct {
	// RangeSelectors are tried in order to find the range selector element.
	RangeSelectors []string

	// Enumerated filter groups: caller-facing label -> data-tst attribute.
	Solutions      map[string]string
	CashTypes      map[string]string
	CashPlayers    map[string]string
	CashStacks     map[string]string
	AvailableSpots map[string]SpotOption

	// ButtonClass is the class shared by all filter buttons, ActiveClass the
	// class a button gains once selected.
	ButtonClass string
	ActiveClass string
}

// SpotOption pairs a data-tst attribute with the button's display text,
// which differs from the caller-facing label for this group.
type SpotOption struct {
	DataTst     string
	DisplayText string
}

// DefaultActionConfig returns the selector tables for the GTO Wizard
// range-builder UI.
func DefaultActionConfig() ActionConfig {
	return ActionConfig{
		RangeSelectors: []string{
			"div.gmfover.text-noselect.gw_loading_text",
			"div.gmfover",
			"div[class*='gmfover']",
			"div[class*='gw_loading_text']",
		},
		Solutions: map[string]string{
			"Cash":      "chrow_cash",
			"MTT":       "chrow_mtt",
			"Spin & Go": "chrow_spins",
			"Hu SnG":    "chrow_husng",
		},
		CashTypes: map[string]string{
			"Classic":             "chrow_classic",
			"Short":               "chrow_shortstack",
			"Ante":                "chrow_ante",
			"Straddle":            "chrow_straddle",
			"Straddle+Ante":       "chrow_ante_straddle",
			"DoubleStraddle":      "chrow_double_straddle",
			"MississippiStraddle": "chrow_mississippi_straddle",
		},
		CashPlayers: map[string]string{
			"Heads-up": "chrow_hu",
			"6max":     "chrow_6max",
			"8max":     "chrow_8max",
			"9max":     "chrow_9max",
		},
		CashStacks: map[string]string{
			"Any": "chrow_any",
			"200": "chrow_200",
			"150": "chrow_150",
			"100": "chrow_100",
			"75":  "chrow_75",
			"50":  "chrow_50",
			"40":  "chrow_40",
			"20":  "chrow_20",
		},
		AvailableSpots: map[string]SpotOption{
			"postflop_included": {DataTst: "chrow_all_spots", DisplayText: "Postflop included"},
			"preflop_only":      {DataTst: "chrow_preflop_only", DisplayText: "Preflop only"},
		},
		ButtonClass: "gw_btn.gw_btn_text.gw_loading_text.cherow_row_checkbox.cherow_row_checkbox_item",
		ActiveClass: "gw_btn_active",
	}
}

// buttonSelectors builds the fallback selector list for one filter button.
// The data-tst attribute is the stable hook; the text-based variants cover
// UI revisions that drop it.
func (c ActionConfig) buttonSelectors(dataTst, displayText string) []string {
	return []string{
		fmt.Sprintf("div[data-tst='%s']", dataTst),
		fmt.Sprintf("div[data-tst='%s'] span", dataTst),
		fmt.Sprintf("div:has-text('%s')", displayText),
		fmt.Sprintf("text=%s", displayText),
		fmt.Sprintf("div.%s:has-text('%s')", c.ButtonClass, displayText),
	}
}

// activeSelector matches a filter button once the page marks it selected.
func (c ActionConfig) activeSelector(dataTst string) string {
	return fmt.Sprintf("div[data-tst='%s'].%s", dataTst, c.ActiveClass)
}

// step is one validated click in a get-range sequence.
type step struct {
	group       string
	value       string
	dataTst     string
	displayText string
	tag         string
	messagePart string
}

var (
	solutionsReplacer   = strings.NewReplacer(" ", "_", "&", "and")
	cashTypeReplacer    = strings.NewReplacer(" ", "_", "+", "plus", "&", "and")
	cashPlayersReplacer = strings.NewReplacer(" ", "_", "-", "_")
)

// getRangeSteps validates every supplied filter value and returns the click
// sequence. Validation happens before any click: an unrecognized value
// rejects the whole request with no page interaction.
func (c ActionConfig) getRangeSteps(solutions, cashType, cashPlayers, availableSpots, cashStacks string) ([]step, error) {
	var steps []step

	if v := strings.TrimSpace(solutions); v != "" {
		dataTst, ok := c.Solutions[v]
		if !ok {
			return nil, fmt.Errorf("%w: invalid solutions value %q, must be one of: %s",
				ErrInvalidParameter, v, joinKeys(c.Solutions))
		}
		steps = append(steps, step{
			group:       "solutions",
			value:       v,
			dataTst:     dataTst,
			displayText: v,
			tag:         "clicked_" + solutionsReplacer.Replace(strings.ToLower(v)),
			messagePart: v + " solutions button",
		})
	}

	if v := strings.TrimSpace(cashType); v != "" {
		dataTst, ok := c.CashTypes[v]
		if !ok {
			return nil, fmt.Errorf("%w: invalid cash_type value %q, must be one of: %s",
				ErrInvalidParameter, v, joinKeys(c.CashTypes))
		}
		steps = append(steps, step{
			group:       "cash_type",
			value:       v,
			dataTst:     dataTst,
			displayText: v,
			tag:         "clicked_" + cashTypeReplacer.Replace(strings.ToLower(v)),
			messagePart: v + " cash_type button",
		})
	}

	if v := strings.TrimSpace(cashPlayers); v != "" {
		dataTst, ok := c.CashPlayers[v]
		if !ok {
			return nil, fmt.Errorf("%w: invalid cash_players value %q, must be one of: %s",
				ErrInvalidParameter, v, joinKeys(c.CashPlayers))
		}
		steps = append(steps, step{
			group:       "cash_players",
			value:       v,
			dataTst:     dataTst,
			displayText: v,
			tag:         "clicked_" + cashPlayersReplacer.Replace(strings.ToLower(v)),
			messagePart: v + " cash_players button",
		})
	}

	if v := strings.TrimSpace(availableSpots); v != "" {
		opt, ok := c.AvailableSpots[v]
		if !ok {
			return nil, fmt.Errorf("%w: invalid available_spots value %q, must be one of: %s",
				ErrInvalidParameter, v, joinSpotKeys(c.AvailableSpots))
		}
		steps = append(steps, step{
			group:       "available_spots",
			value:       v,
			dataTst:     opt.DataTst,
			displayText: opt.DisplayText,
			tag:         "clicked_" + cashPlayersReplacer.Replace(strings.ToLower(v)),
			messagePart: v + " available_spots button",
		})
	}

	if v := strings.TrimSpace(cashStacks); v != "" {
		dataTst, ok := c.CashStacks[v]
		if !ok {
			return nil, fmt.Errorf("%w: invalid cash_stacks value %q, must be one of: %s",
				ErrInvalidParameter, v, joinKeys(c.CashStacks))
		}
		steps = append(steps, step{
			group:       "cash_stacks",
			value:       v,
			dataTst:     dataTst,
			displayText: v,
			tag:         "clicked_" + strings.ToLower(v),
			messagePart: v + " cash_stacks button",
		})
	}

	return steps, nil
}

func joinKeys(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

func joinSpotKeys(m map[string]SpotOption) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
