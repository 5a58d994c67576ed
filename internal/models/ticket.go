package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

type Ticket struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user" json:"user"`
	TrainID         primitive.ObjectID `bson:"train" json:"train"`
	PNR             string             `bson:"pnr" json:"pnr"`
	PassengerName   string             `bson:"passengerName" json:"passengerName"`
	PassengerAge    int                `bson:"passengerAge" json:"passengerAge"`
	PassengerGender string             `bson:"passengerGender" json:"passengerGender"`
	ClassType       string             `bson:"classType" json:"classType"`
	SeatNumber      string             `bson:"seatNumber" json:"seatNumber"`
	BookingDate     time.Time          `bson:"bookingDate" json:"bookingDate"`
	JourneyDate     time.Time          `bson:"journeyDate" json:"journeyDate"`
	// Source, Destination and Price are snapshots taken from the train at
	// booking time; later catalog edits do not touch issued tickets.
	Source      string    `bson:"source" json:"source"`
	Destination string    `bson:"destination" json:"destination"`
	Price       float64   `bson:"price" json:"price"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// TicketDetail is a ticket with the train display fields attached, the shape
// booking and ticket reads hand back to clients.
type TicketDetail struct {
	Ticket `bson:",inline"`
	Train  *TrainSummary `bson:"trainDoc,omitempty" json:"trainDetails,omitempty"`
}

// TrainSummary carries the display subset of a train embedded in ticket reads.
type TrainSummary struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	TrainNumber   string             `bson:"trainNumber" json:"trainNumber"`
	TrainName     string             `bson:"trainName" json:"trainName"`
	Source        string             `bson:"source" json:"source"`
	Destination   string             `bson:"destination" json:"destination"`
	DepartureTime string             `bson:"departureTime" json:"departureTime"`
	ArrivalTime   string             `bson:"arrivalTime" json:"arrivalTime"`
}

// GeneratePNR builds a booking reference from the current millisecond timestamp
// in base36 plus a crypto-random suffix, so collisions stay negligible even
// under bursts that land on the same millisecond.
func GeneratePNR() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate PNR: %w", err)
	}
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return "PNR" + ts + strings.ToUpper(hex.EncodeToString(buf)), nil
}

func (t *Ticket) BeforeCreate() error {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if t.PNR == "" {
		pnr, err := GeneratePNR()
		if err != nil {
			return err
		}
		t.PNR = pnr
	}
	if t.Status == "" {
		t.Status = StatusBooked
	}
	now := time.Now()
	if t.BookingDate.IsZero() {
		t.BookingDate = now
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	return nil
}

// SeatLabel derives the class-prefixed seat identifier from the inventory state
// immediately after a seat was reserved. Labels count seats ever sold; numbers
// freed by cancellation are not handed out again.
func SeatLabel(classType string, totalSeats, availableAfterReserve int) string {
	return fmt.Sprintf("%s-%d", strings.ToUpper(classType), totalSeats-availableAfterReserve)
}

// BookTicketRequest is the booking payload. Source/destination and price are
// never taken from the client; they are copied from the train server-side.
type BookTicketRequest struct {
	TrainID         string `json:"trainId" binding:"required"`
	PassengerName   string `json:"passengerName" binding:"required"`
	PassengerAge    int    `json:"passengerAge" binding:"required,gte=1,lte=120"`
	PassengerGender string `json:"passengerGender" binding:"required,oneof=male female other"`
	ClassType       string `json:"classType" binding:"required,oneof=sleeper 3ac 2ac 1ac general"`
	JourneyDate     string `json:"journeyDate" binding:"required"`
}

// ParseJourneyDate accepts a plain date or a full RFC3339 timestamp.
func (r *BookTicketRequest) ParseJourneyDate() (time.Time, error) {
	if d, err := time.Parse("2006-01-02", r.JourneyDate); err == nil {
		return d, nil
	}
	d, err := time.Parse(time.RFC3339, r.JourneyDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: journeyDate must be YYYY-MM-DD", ErrValidation)
	}
	return d, nil
}
