package models

// Room is a bookable interview location.
type Room struct {
	ID           string     `json:"id"`
	Availability []TimeSlot `json:"availability"`
}
