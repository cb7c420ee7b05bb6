package service

import (
	"fmt"
	"strings"

	"mira/internal/model"
)

// TripSystemPrompt describes the trip to the model so answers stay on topic.
func TripSystemPrompt(trip *model.Trip) string {
	var b strings.Builder
	b.WriteString("You are Mira, a travel planning assistant. ")
	b.WriteString("Help the user plan the trip below. Be concrete and concise.\n\n")

	fmt.Fprintf(&b, "Trip: %s\n", trip.Title)
	fmt.Fprintf(&b, "Destination: %s\n", trip.Destination)

	switch {
	case trip.StartDate != nil && trip.EndDate != nil:
		fmt.Fprintf(&b, "Dates: %s to %s\n", trip.StartDate.Format(dateLayout), trip.EndDate.Format(dateLayout))
	case trip.StartDate != nil:
		fmt.Fprintf(&b, "Start date: %s\n", trip.StartDate.Format(dateLayout))
	case trip.EndDate != nil:
		fmt.Fprintf(&b, "End date: %s\n", trip.EndDate.Format(dateLayout))
	default:
		b.WriteString("Dates: not decided\n")
	}

	fmt.Fprintf(&b, "Travelers: %d\n", trip.TravelersCount)
	if trip.Budget != nil {
		fmt.Fprintf(&b, "Budget: %s\n", trip.Budget.String())
	} else {
		b.WriteString("Budget: not set\n")
	}
	fmt.Fprintf(&b, "Status: %s", trip.Status)
	return b.String()
}

const dateLayout = "2006-01-02"
