package models

import (
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ClassSleeper = "sleeper"
	Class3AC     = "3ac"
	Class2AC     = "2ac"
	Class1AC     = "1ac"
	ClassGeneral = "general"
)

var ClassTypes = []string{ClassSleeper, Class3AC, Class2AC, Class1AC, ClassGeneral}

var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var timeOfDayPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ClassInventory is the per-class seat pool attached to a train. TotalSeats is
// fixed at creation; AvailableSeats must stay within [0, TotalSeats].
type ClassInventory struct {
	Type           string  `bson:"type" json:"type" binding:"required,oneof=sleeper 3ac 2ac 1ac general"`
	AvailableSeats int     `bson:"availableSeats" json:"availableSeats" binding:"min=0"`
	TotalSeats     int     `bson:"totalSeats" json:"totalSeats" binding:"required,min=1"`
	Price          float64 `bson:"price" json:"price" binding:"min=0"`
}

type Train struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainNumber   string             `bson:"trainNumber" json:"trainNumber" binding:"required"`
	TrainName     string             `bson:"trainName" json:"trainName" binding:"required"`
	Source        string             `bson:"source" json:"source" binding:"required"`
	Destination   string             `bson:"destination" json:"destination" binding:"required"`
	DepartureTime string             `bson:"departureTime" json:"departureTime" binding:"required"`
	ArrivalTime   string             `bson:"arrivalTime" json:"arrivalTime" binding:"required"`
	Classes       []ClassInventory   `bson:"classes" json:"classes" binding:"required,min=1,dive"`
	Days          []string           `bson:"days" json:"days" binding:"dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Active        bool               `bson:"active" json:"active"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

func (t *Train) BeforeCreate() {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
}

// ValidateTrain covers the whole-document rules the struct tags cannot express:
// HH:MM times, class uniqueness and the seat-count invariant.
func (t *Train) ValidateTrain() error {
	if err := Validate.Struct(t); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !timeOfDayPattern.MatchString(t.DepartureTime) {
		return fmt.Errorf("%w: departure time must be HH:MM", ErrValidation)
	}
	if !timeOfDayPattern.MatchString(t.ArrivalTime) {
		return fmt.Errorf("%w: arrival time must be HH:MM", ErrValidation)
	}
	seen := make(map[string]bool, len(t.Classes))
	for _, cls := range t.Classes {
		if seen[cls.Type] {
			return fmt.Errorf("%w: duplicate class type %q", ErrValidation, cls.Type)
		}
		seen[cls.Type] = true
		if cls.AvailableSeats > cls.TotalSeats {
			return fmt.Errorf("%w: class %q has more available seats than total", ErrValidation, cls.Type)
		}
	}
	return nil
}

// Class returns the inventory entry for the given class type, or nil.
func (t *Train) Class(classType string) *ClassInventory {
	for i := range t.Classes {
		if t.Classes[i].Type == classType {
			return &t.Classes[i]
		}
	}
	return nil
}
