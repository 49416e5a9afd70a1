package domain

import (
	"time"
)

// TransportType is the closed set of transport categories a provider can operate.
type TransportType string

const (
	TransportFlight TransportType = "flight"
	TransportTrain  TransportType = "train"
	TransportBus    TransportType = "bus"
	TransportMetro  TransportType = "metro"
)

// TransportTypes lists every valid transport type.
var TransportTypes = []TransportType{TransportFlight, TransportTrain, TransportBus, TransportMetro}

// Valid reports whether t is one of the four known transport types.
func (t TransportType) Valid() bool {
	switch t {
	case TransportFlight, TransportTrain, TransportBus, TransportMetro:
		return true
	}
	return false
}

// ScheduleActive is the only schedule status that is bookable and searchable.
const ScheduleActive = "active"

// BookingConfirmed is the status assigned to every newly created booking.
const BookingConfirmed = "confirmed"

// Provider is an operator of transport services (e.g. GSRTC, Indian Railways).
type Provider struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Type        TransportType `json:"type"`
	LogoURL     string        `json:"logoUrl,omitempty"`
	ContactInfo string        `json:"contactInfo,omitempty"`
	Rating      float64       `json:"rating,omitempty"`
}

// Route is a fixed source-destination pair operated by one provider.
type Route struct {
	ID          int    `json:"id"`
	ProviderID  int    `json:"providerId"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Duration    int    `json:"duration"` // minutes
	Distance    int    `json:"distance,omitempty"` // km
	StopsCount  int    `json:"stopsCount"`
	RouteNumber string `json:"routeNumber,omitempty"`
}

// Schedule is a timed departure instance of a route with its own fare and
// seat inventory.
type Schedule struct {
	ID             int       `json:"id"`
	RouteID        int       `json:"routeId"`
	DepartureTime  time.Time `json:"departureTime"`
	ArrivalTime    time.Time `json:"arrivalTime"`
	FareAmount     int       `json:"fareAmount"` // INR
	AvailableSeats int       `json:"availableSeats"`
	Status         string    `json:"status"`
	VehicleID      string    `json:"vehicleId,omitempty"`
}

// Booking is a passenger's reservation against one schedule.
type Booking struct {
	ID             int       `json:"id"`
	UserID         *int      `json:"userId,omitempty"`
	ScheduleID     int       `json:"scheduleId"`
	BookingDate    time.Time `json:"bookingDate"`
	PassengerName  string    `json:"passengerName"`
	PassengerPhone string    `json:"passengerPhone"`
	PassengerEmail string    `json:"passengerEmail,omitempty"`
	SeatNumber     string    `json:"seatNumber"`
	TotalAmount    int       `json:"totalAmount"`
	Status         string    `json:"status"`
	PaymentMethod  string    `json:"paymentMethod,omitempty"`
}

// PopularRoute is a curated (route, schedule) pair shown on the homepage.
type PopularRoute struct {
	ID         int `json:"id"`
	RouteID    int `json:"routeId"`
	ScheduleID int `json:"scheduleId"`
	Count      int `json:"count"`
}

// Offer is a promotion applicable to a set of transport types.
type Offer struct {
	ID              int             `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Discount        *int            `json:"discount,omitempty"` // percent
	ValidUntil      *time.Time      `json:"validUntil,omitempty"`
	ImageURL        string          `json:"imageUrl,omitempty"`
	ApplicableTypes []TransportType `json:"applicableTypes"`
}

// RouteWithDetails is the denormalized read view joining provider, route and
// schedule for search results and route detail pages. Departure and arrival
// are rendered as ISO-8601 strings so that lexicographic order matches
// chronological order.
type RouteWithDetails struct {
	ID             int           `json:"id"`
	ProviderID     int           `json:"providerId"`
	ProviderName   string        `json:"providerName"`
	ProviderLogo   string        `json:"providerLogo,omitempty"`
	ProviderType   TransportType `json:"providerType"`
	Source         string        `json:"source"`
	Destination    string        `json:"destination"`
	Duration       int           `json:"duration"`
	Distance       int           `json:"distance,omitempty"`
	FareAmount     int           `json:"fareAmount"`
	DepartureTime  string        `json:"departureTime"`
	ArrivalTime    string        `json:"arrivalTime"`
	AvailableSeats int           `json:"availableSeats"`
	Status         string        `json:"status"`
	ScheduleID     int           `json:"scheduleId"`
	VehicleID      string        `json:"vehicleId,omitempty"`
}
