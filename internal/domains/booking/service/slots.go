package service

import (
	"fmt"

	"shine/shared/constant"
)

const minutesPerHour = 60

// BuildSlotTimes returns the start times that fit the 08:00-17:00 working
// window for the given service duration. Starts are taken every durationMin
// minutes from 08:00; the last slot may run past 17:00.
func BuildSlotTimes(durationMin int) []string {
	if durationMin <= 0 {
		durationMin = constant.DefaultSlotDurationMin
	}

	slots := []string{}

	for m := constant.SlotWindowStartHour * minutesPerHour; m < constant.SlotWindowEndHour*minutesPerHour; m += durationMin {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/minutesPerHour, m%minutesPerHour))
	}

	return slots
}
