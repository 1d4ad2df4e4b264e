package models

// Slot represents a specific bookable start time on a given date.
type Slot struct {
	Start        string `json:"start"`        // ISO datetime, e.g. "2025-03-10T09:00"
	StartDisplay string `json:"startDisplay"` // e.g., "9:00 AM"
	Available    bool   `json:"available"`
}

// DayAvailability describes the bookable state of a single calendar date.
type DayAvailability struct {
	Available      bool   `json:"available"`
	AvailableCount int    `json:"availableCount"`
	DayLabel       string `json:"dayLabel"`
	Slots          []Slot `json:"slots"`
}

// AvailabilityWindow maps date strings ("YYYY-MM-DD") to the day's slot
// information, as returned by the availability oracle for one month.
type AvailabilityWindow map[string]DayAvailability
