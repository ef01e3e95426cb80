package validators

import (
	"context"

	"github.com/MKhiriev/evently/models"
)

const (
	FieldEventDetails  = "event_details"
	FieldEventDates    = "event_dates"
	FieldEventLocation = "event_location"
	FieldCreatedBy     = "created_by"
)

// EventValidator validates events before they are written. Location rules
// follow the variant: physical needs a venue, online a URL, both needs both.
type EventValidator struct {
}

func NewEventValidator() Validator {
	return &EventValidator{}
}

func (v *EventValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Event:
		return v.validateEvent(value, fields...)
	case *models.Event:
		return v.validateEvent(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *EventValidator) validateEvent(e models.Event, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEventDetails, FieldEventDates, FieldEventLocation, FieldCreatedBy}
	}

	for _, f := range fields {
		switch f {
		case FieldEventDetails:
			if blank(e.EventName) || blank(e.Category) || blank(e.Description) {
				return ErrEventFieldsRequired
			}
		case FieldEventDates:
			if e.StartDate.IsZero() || e.EndDate.IsZero() || blank(e.StartTime) || blank(e.EndTime) {
				return ErrEventFieldsRequired
			}
			if e.EndDate.Before(e.StartDate) {
				return ErrInvalidEventDates
			}
		case FieldEventLocation:
			if err := validateLocation(e.Location); err != nil {
				return err
			}
		case FieldCreatedBy:
			if blank(e.CreatedBy) {
				return ErrEventCreatorRequired
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateLocation(loc models.EventLocation) error {
	needVenue, needURL := false, false
	switch loc.Mode {
	case models.LocationPhysical:
		needVenue = true
	case models.LocationOnline:
		needURL = true
	case models.LocationBoth:
		needVenue, needURL = true, true
	default:
		return ErrInvalidLocationMode
	}

	if needVenue {
		venue := loc.Venue
		if venue == nil || blank(venue.Country) || blank(venue.State) || blank(venue.Location) {
			return ErrVenueRequired
		}
	}
	if needURL && blank(loc.URL) {
		return ErrURLRequired
	}

	return nil
}
