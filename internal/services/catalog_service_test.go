package services

import (
	"context"
	"testing"

	"github.com/railbook/railbook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validTrain(number string) *models.Train {
	return &models.Train{
		TrainNumber:   number,
		TrainName:     "Howrah Mail",
		Source:        "Kolkata",
		Destination:   "Chennai",
		DepartureTime: "23:45",
		ArrivalTime:   "04:10",
		Classes: []models.ClassInventory{
			{Type: models.ClassSleeper, AvailableSeats: 72, TotalSeats: 72, Price: 650},
			{Type: models.Class3AC, AvailableSeats: 48, TotalSeats: 48, Price: 1100},
		},
		Days: []string{"Monday", "Thursday"},
	}
}

func TestCreateTrain(t *testing.T) {
	repo := models.NewMemoryRepo()
	cs := NewCatalogService(repo, repo)

	created, err := cs.CreateTrain(context.Background(), validTrain("12841"))
	require.NoError(t, err)
	assert.True(t, created.Active, "new trains start active")
	assert.False(t, created.ID.IsZero())
	assert.False(t, created.CreatedAt.IsZero())

	_, err = cs.CreateTrain(context.Background(), validTrain("12841"))
	require.ErrorIs(t, err, models.ErrDuplicateTrainNumber)
}

func TestCreateTrain_Validation(t *testing.T) {
	repo := models.NewMemoryRepo()
	cs := NewCatalogService(repo, repo)

	tests := []struct {
		name   string
		mutate func(*models.Train)
	}{
		{"missing number", func(tr *models.Train) { tr.TrainNumber = "" }},
		{"bad departure time", func(tr *models.Train) { tr.DepartureTime = "25:00" }},
		{"bad arrival time", func(tr *models.Train) { tr.ArrivalTime = "9am" }},
		{"no classes", func(tr *models.Train) { tr.Classes = nil }},
		{"duplicate class", func(tr *models.Train) {
			tr.Classes = append(tr.Classes, models.ClassInventory{Type: models.ClassSleeper, AvailableSeats: 10, TotalSeats: 10, Price: 700})
		}},
		{"available exceeds total", func(tr *models.Train) { tr.Classes[0].AvailableSeats = 100 }},
		{"unknown class type", func(tr *models.Train) { tr.Classes[0].Type = "business" }},
		{"unknown day", func(tr *models.Train) { tr.Days = []string{"Funday"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			train := validTrain("12842")
			tt.mutate(train)
			_, err := cs.CreateTrain(context.Background(), train)
			require.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestUpdateTrain(t *testing.T) {
	repo := models.NewMemoryRepo()
	cs := NewCatalogService(repo, repo)

	created, err := cs.CreateTrain(context.Background(), validTrain("12843"))
	require.NoError(t, err)

	created.TrainName = "Coromandel Express"
	created.Active = false
	updated, err := cs.UpdateTrain(context.Background(), created.ID, created)
	require.NoError(t, err)
	assert.Equal(t, "Coromandel Express", updated.TrainName)
	assert.False(t, updated.Active)

	created.DepartureTime = "not a time"
	_, err = cs.UpdateTrain(context.Background(), created.ID, created)
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestDeleteTrain_BlockedByBookedTickets(t *testing.T) {
	repo := models.NewMemoryRepo()
	cs := NewCatalogService(repo, repo)
	bs := NewBookingService(repo, repo)
	user := primitive.NewObjectID()

	created, err := cs.CreateTrain(context.Background(), validTrain("12844"))
	require.NoError(t, err)

	ticket, err := bs.BookTicket(context.Background(), user, bookingRequest(created.ID, models.ClassSleeper))
	require.NoError(t, err)

	err = cs.DeleteTrain(context.Background(), created.ID)
	require.ErrorIs(t, err, models.ErrTrainHasTickets)

	// Once the last booked ticket is cancelled the train can go.
	_, err = bs.CancelTicket(context.Background(), ticket.ID, user)
	require.NoError(t, err)

	require.NoError(t, cs.DeleteTrain(context.Background(), created.ID))
	err = cs.DeleteTrain(context.Background(), created.ID)
	require.ErrorIs(t, err, models.ErrTrainNotFound)
}
