package registration

import "fmt"

// Step numbers the wizard screens in order.
type Step int

const (
	StepMode Step = iota + 1
	StepTeamSize
	StepTimeSlot
	StepTier
)

// Wizard holds the in-progress registration for one session. Selections are
// ephemeral: nothing is persisted until Confirm succeeds, and moving back to
// an earlier step discards every later choice.
type Wizard struct {
	mode     Mode
	teamSize string
	slot     string
	tier     string
}

// Step reports the screen the wizard is currently on.
func (w *Wizard) Step() Step {
	switch {
	case w.mode == "":
		return StepMode
	case w.teamSize == "":
		return StepTeamSize
	case w.slot == "":
		return StepTimeSlot
	default:
		return StepTier
	}
}

// Complete reports whether every step has a selection.
func (w *Wizard) Complete() bool {
	return w.mode != "" && w.teamSize != "" && w.slot != "" && w.tier != ""
}

// SelectMode sets the game mode and clears every later selection.
func (w *Wizard) SelectMode(mode Mode) error {
	if _, err := TeamSizes(mode); err != nil {
		return err
	}
	w.mode = mode
	w.teamSize = ""
	w.slot = ""
	w.tier = ""
	return nil
}

// SelectTeamSize sets the team size and clears every later selection.
func (w *Wizard) SelectTeamSize(size string) error {
	if w.mode == "" {
		return fmt.Errorf("select a mode before a team size")
	}
	if _, err := capacity(w.mode, size); err != nil {
		return err
	}
	w.teamSize = size
	w.slot = ""
	w.tier = ""
	return nil
}

// SelectSlot sets the time slot and clears the tier selection.
func (w *Wizard) SelectSlot(start string) error {
	if w.teamSize == "" {
		return fmt.Errorf("select a team size before a time slot")
	}
	slots, err := TimeSlots(w.mode, w.teamSize)
	if err != nil {
		return err
	}
	for _, slot := range slots {
		if slot.Start == start {
			w.slot = start
			w.tier = ""
			return nil
		}
	}
	return fmt.Errorf("no slot starts at %q", start)
}

// SelectTier sets the entry tier.
func (w *Wizard) SelectTier(id string) error {
	if w.slot == "" {
		return fmt.Errorf("select a time slot before an entry tier")
	}
	if _, err := TierByID(id); err != nil {
		return err
	}
	w.tier = id
	return nil
}

// Back rewinds the wizard to the given step, discarding that step's
// selection and everything after it.
func (w *Wizard) Back(step Step) {
	switch step {
	case StepMode:
		w.mode = ""
		fallthrough
	case StepTeamSize:
		w.teamSize = ""
		fallthrough
	case StepTimeSlot:
		w.slot = ""
		fallthrough
	case StepTier:
		w.tier = ""
	}
}

// Reset clears the wizard back to the first step.
func (w *Wizard) Reset() {
	*w = Wizard{}
}

// Selection is a read-only snapshot of the wizard's choices.
type Selection struct {
	Mode     Mode   `json:"mode"`
	TeamSize string `json:"team_size"`
	Slot     string `json:"slot"`
	Tier     string `json:"tier"`
}

// Selection snapshots the current choices. Empty fields are steps not yet
// taken.
func (w *Wizard) Selection() Selection {
	return Selection{Mode: w.mode, TeamSize: w.teamSize, Slot: w.slot, Tier: w.tier}
}
