package registration

import "fmt"

// Mode is a playable game mode. Each mode fixes the team-size menu offered
// at the next wizard step.
type Mode string

const (
	ModeBattleRoyale Mode = "battle_royale"
	ModeClashSquad   Mode = "clash_squad"
	ModeLoneWolf     Mode = "lone_wolf"
)

// TeamSizeOption pairs a team size with the resulting slot capacity.
type TeamSizeOption struct {
	Size       string `json:"size"`
	MaxPlayers int    `json:"max_players"`
}

// teamSizes is the fixed mode x team-size lookup. Not configurable.
var teamSizes = map[Mode][]TeamSizeOption{
	ModeBattleRoyale: {
		{Size: "solo", MaxPlayers: 48},
		{Size: "duo", MaxPlayers: 48},
		{Size: "squad", MaxPlayers: 48},
	},
	ModeClashSquad: {
		{Size: "1v1", MaxPlayers: 2},
		{Size: "2v2", MaxPlayers: 4},
		{Size: "4v4", MaxPlayers: 8},
	},
	ModeLoneWolf: {
		{Size: "1v1", MaxPlayers: 2},
		{Size: "2v2", MaxPlayers: 4},
	},
}

// Modes lists the selectable game modes.
func Modes() []Mode {
	return []Mode{ModeBattleRoyale, ModeClashSquad, ModeLoneWolf}
}

// TeamSizes returns the team-size menu for a mode.
func TeamSizes(mode Mode) ([]TeamSizeOption, error) {
	options, ok := teamSizes[mode]
	if !ok {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	return options, nil
}

// TimeSlot is one schedulable match window. RegisteredPlayers is not tracked
// server-side; it is always zero here and the field exists so the display
// contract survives until live seat tracking lands.
type TimeSlot struct {
	Start             string `json:"start"`
	RegisteredPlayers int    `json:"registered_players"`
	MaxPlayers        int    `json:"max_players"`
}

// slot generation bounds: 10:00 to 22:00, three 20-minute slots per hour.
const (
	firstSlotHour = 10
	lastSlotHour  = 22
	slotMinutes   = 20
)

// TimeSlots generates the day's schedule for a mode/team-size pairing.
func TimeSlots(mode Mode, size string) ([]TimeSlot, error) {
	maxPlayers, err := capacity(mode, size)
	if err != nil {
		return nil, err
	}
	var slots []TimeSlot
	for hour := firstSlotHour; hour < lastSlotHour; hour++ {
		for minute := 0; minute < 60; minute += slotMinutes {
			slots = append(slots, TimeSlot{
				Start:      fmt.Sprintf("%02d:%02d", hour, minute),
				MaxPlayers: maxPlayers,
			})
		}
	}
	return slots, nil
}

func capacity(mode Mode, size string) (int, error) {
	options, err := TeamSizes(mode)
	if err != nil {
		return 0, err
	}
	for _, opt := range options {
		if opt.Size == size {
			return opt.MaxPlayers, nil
		}
	}
	return 0, fmt.Errorf("team size %q is not offered for mode %q", size, mode)
}

// EntryTier is one of the fixed fee/prize/slot tuples.
type EntryTier struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Fee   int    `json:"fee"`
	Prize int    `json:"prize"`
	Slots int    `json:"slots"`
}

var entryTiers = []EntryTier{
	{ID: "bronze", Name: "Bronze", Fee: 50, Prize: 2000, Slots: 48},
	{ID: "silver", Name: "Silver", Fee: 100, Prize: 5000, Slots: 24},
	{ID: "gold", Name: "Gold", Fee: 250, Prize: 15000, Slots: 12},
	{ID: "elite", Name: "Elite", Fee: 500, Prize: 40000, Slots: 4},
}

// EntryTiers lists the selectable entry tiers.
func EntryTiers() []EntryTier {
	tiers := make([]EntryTier, len(entryTiers))
	copy(tiers, entryTiers)
	return tiers
}

// TierByID resolves a tier id.
func TierByID(id string) (EntryTier, error) {
	for _, tier := range entryTiers {
		if tier.ID == id {
			return tier, nil
		}
	}
	return EntryTier{}, fmt.Errorf("unknown entry tier %q", id)
}
