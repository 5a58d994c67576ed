package services

import (
	"context"
	"testing"
	"time"

	"github.com/railbook/railbook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSearchTrains_CaseInsensitiveSubstring(t *testing.T) {
	repo := models.NewMemoryRepo()
	qs := NewQueryService(repo, repo)

	seedTrain(t, repo, "12301", []models.ClassInventory{
		{Type: models.Class1AC, AvailableSeats: 24, TotalSeats: 24, Price: 3500},
	})
	chennai := seedTrain(t, repo, "12302", []models.ClassInventory{
		{Type: models.Class2AC, AvailableSeats: 32, TotalSeats: 32, Price: 1350},
	})
	chennai.Source = "Chennai"
	chennai.Destination = "Bangalore"
	_, err := repo.UpdateTrain(context.Background(), chennai.ID, chennai)
	require.NoError(t, err)

	// "Delhi" matches "New Delhi" via case-insensitive substring.
	matches, err := qs.SearchTrains(context.Background(), "delhi", "")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "12301", matches[0].TrainNumber)

	matches, err = qs.SearchTrains(context.Background(), "delhi", "MUMBAI")
	require.NoError(t, err)
	require.Len(t, matches, 1)

	matches, err = qs.SearchTrains(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = qs.SearchTrains(context.Background(), "Pune", "")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearchTrains_ExcludesInactive(t *testing.T) {
	repo := models.NewMemoryRepo()
	qs := NewQueryService(repo, repo)

	train := seedTrain(t, repo, "12303", []models.ClassInventory{
		{Type: models.ClassSleeper, AvailableSeats: 80, TotalSeats: 80, Price: 720},
	})
	train.Active = false
	_, err := repo.UpdateTrain(context.Background(), train.ID, train)
	require.NoError(t, err)

	matches, err := qs.SearchTrains(context.Background(), "", "")
	require.NoError(t, err)
	assert.Empty(t, matches)

	// Direct fetch by id still works for inactive trains.
	fetched, err := qs.GetTrain(context.Background(), train.ID)
	require.NoError(t, err)
	assert.False(t, fetched.Active)
}

func TestGetTrain_NotFound(t *testing.T) {
	repo := models.NewMemoryRepo()
	qs := NewQueryService(repo, repo)

	_, err := qs.GetTrain(context.Background(), primitive.NewObjectID())
	require.ErrorIs(t, err, models.ErrTrainNotFound)
}

func TestGetTicket_OwnershipEnforced(t *testing.T) {
	repo := models.NewMemoryRepo()
	bs := NewBookingService(repo, repo)
	qs := NewQueryService(repo, repo)
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	admin := primitive.NewObjectID()

	train := seedTrain(t, repo, "12304", []models.ClassInventory{
		{Type: models.Class3AC, AvailableSeats: 10, TotalSeats: 10, Price: 980},
	})
	ticket, err := bs.BookTicket(context.Background(), owner, bookingRequest(train.ID, models.Class3AC))
	require.NoError(t, err)

	got, err := qs.GetTicket(context.Background(), ticket.ID, owner, false)
	require.NoError(t, err)
	assert.Equal(t, ticket.PNR, got.PNR)
	require.NotNil(t, got.Train)
	assert.Equal(t, "12304", got.Train.TrainNumber)

	_, err = qs.GetTicket(context.Background(), ticket.ID, stranger, false)
	require.ErrorIs(t, err, models.ErrNotAuthorized)

	_, err = qs.GetTicket(context.Background(), ticket.ID, admin, true)
	require.NoError(t, err)

	_, err = qs.GetTicket(context.Background(), primitive.NewObjectID(), owner, false)
	require.ErrorIs(t, err, models.ErrTicketNotFound)
}

func TestListUserTickets_NewestFirst(t *testing.T) {
	repo := models.NewMemoryRepo()
	qs := NewQueryService(repo, repo)
	user := primitive.NewObjectID()
	other := primitive.NewObjectID()

	train := seedTrain(t, repo, "12305", []models.ClassInventory{
		{Type: models.ClassGeneral, AvailableSeats: 50, TotalSeats: 50, Price: 120},
	})

	base := time.Now().Add(-time.Hour)
	for i, who := range []primitive.ObjectID{user, other, user, user} {
		_, err := repo.CreateTicket(context.Background(), &models.Ticket{
			UserID:          who,
			TrainID:         train.ID,
			PassengerName:   "Passenger",
			PassengerAge:    30,
			PassengerGender: "other",
			ClassType:       models.ClassGeneral,
			SeatNumber:      models.SeatLabel(models.ClassGeneral, 50, 50-i-1),
			JourneyDate:     base.AddDate(0, 0, 7),
			Source:          train.Source,
			Destination:     train.Destination,
			Price:           120,
			CreatedAt:       base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	tickets, err := qs.ListUserTickets(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, tickets, 3)
	for i := 1; i < len(tickets); i++ {
		assert.True(t, !tickets[i-1].CreatedAt.Before(tickets[i].CreatedAt), "tickets must be newest first")
	}

	all, err := qs.ListAllTickets(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
