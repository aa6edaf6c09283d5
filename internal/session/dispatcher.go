package session

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/solverops/rangectl/internal/driver"
	"github.com/solverops/rangectl/pkg/models"
)

// Dispatcher executes named actions against active sessions. Actions are
// short sequential scripts: a fixed click on the range selector, then one
// click per supplied filter group. A step failure invalidates the session
// (the page state afterward is undefined), so the record transitions to
// error and the caller must create a new session.
type Dispatcher struct {
	manager *Manager
	actions ActionConfig

	// stepTimeout bounds each locate-and-click attempt, verifyTimeout the
	// best-effort check that a clicked button reads as selected.
	stepTimeout   time.Duration
	verifyTimeout time.Duration
}

// ActionResult reports which sub-steps of an action executed, letting the
// caller distinguish partial from full filter application.
type ActionResult struct {
	StepsPerformed  []string
	ActionPerformed string
	Message         string
}

// NewDispatcher creates a dispatcher bound to the manager's store.
func NewDispatcher(manager *Manager, actions ActionConfig, stepTimeout time.Duration) *Dispatcher {
	if stepTimeout <= 0 {
		stepTimeout = 5 * time.Second
	}
	return &Dispatcher{
		manager:       manager,
		actions:       actions,
		stepTimeout:   stepTimeout,
		verifyTimeout: 3 * time.Second,
	}
}

// GetRange performs the get-range action: open the range selector, then
// click each supplied filter button. Every filter value is validated before
// the first click, so an unrecognized value performs no page interaction.
func (d *Dispatcher) GetRange(req models.GetRangeRequest) (*ActionResult, error) {
	steps, err := d.actions.getRangeSteps(
		req.Solutions, req.CashType, req.CashPlayers, req.AvailableSpots, req.CashStacks)
	if err != nil {
		return nil, err
	}

	rec, ok := d.manager.store.record(req.SessionID)
	if !ok {
		return nil, ErrNotFound
	}

	rec.opMu.Lock()
	defer rec.opMu.Unlock()

	rec.mu.Lock()
	status := rec.Status
	page := rec.Page
	rec.mu.Unlock()

	if status != models.StatusActive {
		return nil, fmt.Errorf("%w: session is %s", ErrNotUsable, status)
	}

	log.Printf("Looking for range selector in session %s", req.SessionID)
	matched, err := page.ClickFirst(d.actions.RangeSelectors, d.stepTimeout)
	if err != nil {
		failErr := fmt.Errorf("%w: could not find or click the range selector: %v", ErrElementNotFound, err)
		d.manager.fail(rec, failErr)
		return nil, failErr
	}
	log.Printf("Clicked range selector using selector %q in session %s", matched, req.SessionID)

	performed := []string{"range_selector"}
	for _, st := range steps {
		if err := d.clickFilter(page, st, req.SessionID); err != nil {
			d.manager.fail(rec, err)
			return nil, err
		}
		performed = append(performed, st.group)
	}

	return d.buildResult(performed, steps), nil
}

// clickFilter clicks one filter button and verifies, best effort, that the
// page marked it selected. Verification failure is logged, not fatal: the
// click itself succeeded.
func (d *Dispatcher) clickFilter(page driver.Page, st step, sessionID string) error {
	selectors := d.actions.buttonSelectors(st.dataTst, st.displayText)

	matched, err := page.ClickFirst(selectors, d.stepTimeout)
	if err != nil {
		return fmt.Errorf("%w: could not click %s button for %q: %v",
			ErrElementNotFound, st.group, st.value, err)
	}
	log.Printf("Clicked %s button for %q using selector %q in session %s",
		st.group, st.value, matched, sessionID)

	if err := page.WaitVisible(d.actions.activeSelector(st.dataTst), d.verifyTimeout); err != nil {
		log.Printf("Warning: could not verify %s button %q is active in session %s: %v",
			st.group, st.value, sessionID, err)
	}
	return nil
}

func (d *Dispatcher) buildResult(performed []string, steps []step) *ActionResult {
	messageParts := []string{"Successfully clicked on range selector div"}
	tags := make([]string, 0, len(steps))
	for _, st := range steps {
		tags = append(tags, st.tag)
		messageParts = append(messageParts, st.messagePart)
	}

	actionPerformed := "clicked_range_selector"
	if len(tags) > 0 {
		actionPerformed = strings.Join(tags, "_and_")
	}

	return &ActionResult{
		StepsPerformed:  performed,
		ActionPerformed: actionPerformed,
		Message:         strings.Join(messageParts, " and "),
	}
}
