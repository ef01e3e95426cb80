package models

import (
	"encoding/json"
	"time"
)

// LocationMode selects which location fields an event carries.
type LocationMode string

const (
	LocationPhysical LocationMode = "physical"
	LocationOnline   LocationMode = "online"
	LocationBoth     LocationMode = "both"
)

// Venue is the physical place of an event.
type Venue struct {
	Country  string
	State    string
	Location string
}

// EventLocation is a tagged variant: Venue is set only for physical and
// both, URL only for online and both. Use [NewEventLocation] to build one so
// that fields outside the variant are dropped.
type EventLocation struct {
	Mode  LocationMode
	Venue *Venue
	URL   string
}

// NewEventLocation builds the variant for mode, keeping only the fields that
// belong to it.
func NewEventLocation(mode LocationMode, venue *Venue, url string) EventLocation {
	loc := EventLocation{Mode: mode}

	switch mode {
	case LocationPhysical:
		loc.Venue = venue
	case LocationOnline:
		loc.URL = url
	case LocationBoth:
		loc.Venue = venue
		loc.URL = url
	}

	return loc
}

// Event is a scheduled happening created by a user.
type Event struct {
	ID          string
	EventName   string
	Category    string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	StartTime   string
	EndTime     string
	Location    EventLocation
	EventImage  string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// eventJSON is the flat wire shape used by the web client.
type eventJSON struct {
	ID            string       `json:"id,omitempty"`
	EventName     string       `json:"eventName"`
	Category      string       `json:"category"`
	Description   string       `json:"description"`
	StartDate     time.Time    `json:"startDate"`
	EndDate       time.Time    `json:"endDate"`
	StartTime     string       `json:"startTime"`
	EndTime       string       `json:"endTime"`
	EventLocation LocationMode `json:"eventLocation"`
	Country       string       `json:"country,omitempty"`
	State         string       `json:"state,omitempty"`
	Location      string       `json:"location,omitempty"`
	URL           string       `json:"url,omitempty"`
	EventImage    string       `json:"eventImage"`
	CreatedBy     string       `json:"createdBy,omitempty"`
	CreatedAt     time.Time    `json:"createdAt,omitzero"`
	UpdatedAt     time.Time    `json:"updatedAt,omitzero"`
}

func (e Event) toJSON() eventJSON {
	w := eventJSON{
		ID:            e.ID,
		EventName:     e.EventName,
		Category:      e.Category,
		Description:   e.Description,
		StartDate:     e.StartDate,
		EndDate:       e.EndDate,
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		EventLocation: e.Location.Mode,
		URL:           e.Location.URL,
		EventImage:    e.EventImage,
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	if v := e.Location.Venue; v != nil {
		w.Country, w.State, w.Location = v.Country, v.State, v.Location
	}

	return w
}

func (w eventJSON) toEvent() Event {
	var venue *Venue
	if w.Country != "" || w.State != "" || w.Location != "" {
		venue = &Venue{Country: w.Country, State: w.State, Location: w.Location}
	}

	return Event{
		ID:          w.ID,
		EventName:   w.EventName,
		Category:    w.Category,
		Description: w.Description,
		StartDate:   w.StartDate,
		EndDate:     w.EndDate,
		StartTime:   w.StartTime,
		EndTime:     w.EndTime,
		Location:    NewEventLocation(w.EventLocation, venue, w.URL),
		EventImage:  w.EventImage,
		CreatedBy:   w.CreatedBy,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// MarshalJSON flattens the location variant.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.toJSON())
}

// UnmarshalJSON decodes the flat wire shape on top of the current value, so
// decoding a partial body into an existing event only replaces the fields
// present in the body.
func (e *Event) UnmarshalJSON(b []byte) error {
	w := e.toJSON()
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*e = w.toEvent()
	return nil
}
