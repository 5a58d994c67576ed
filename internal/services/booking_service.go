package services

import (
	"context"
	"fmt"

	"github.com/railbook/railbook/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingService orchestrates ticket issue and cancellation against the train
// catalog and the ticket ledger. Seat accounting is delegated to the repos'
// conditional updates; this layer sequences them and compensates on failure.
type BookingService struct {
	trainRepo  models.TrainRepo
	ticketRepo models.TicketRepo
}

func NewBookingService(trainRepo models.TrainRepo, ticketRepo models.TicketRepo) *BookingService {
	return &BookingService{
		trainRepo:  trainRepo,
		ticketRepo: ticketRepo,
	}
}

// BookTicket reserves a seat before the ticket exists, so capacity can never be
// oversold: the conditional decrement either wins a seat or fails with
// ErrSeatsUnavailable. If the ticket insert then fails, the seat is released.
func (bs *BookingService) BookTicket(ctx context.Context, userID primitive.ObjectID, req *models.BookTicketRequest) (*models.TicketDetail, error) {
	if err := models.Validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	trainID, err := primitive.ObjectIDFromHex(req.TrainID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid train id", models.ErrValidation)
	}

	journeyDate, err := req.ParseJourneyDate()
	if err != nil {
		return nil, err
	}

	train, err := bs.trainRepo.ReserveSeat(ctx, trainID, req.ClassType)
	if err != nil {
		return nil, err
	}

	cls := train.Class(req.ClassType)
	if cls == nil {
		// Reserve matched the class moments ago; a concurrent catalog edit
		// removed it. Undo the decrement and surface the mismatch.
		_ = bs.trainRepo.ReleaseSeat(ctx, trainID, req.ClassType)
		return nil, models.ErrClassNotFound
	}

	ticket := &models.Ticket{
		UserID:          userID,
		TrainID:         train.ID,
		PassengerName:   req.PassengerName,
		PassengerAge:    req.PassengerAge,
		PassengerGender: req.PassengerGender,
		ClassType:       req.ClassType,
		SeatNumber:      models.SeatLabel(req.ClassType, cls.TotalSeats, cls.AvailableSeats),
		JourneyDate:     journeyDate,
		Source:          train.Source,
		Destination:     train.Destination,
		Price:           cls.Price,
	}

	created, err := bs.ticketRepo.CreateTicket(ctx, ticket)
	if err != nil {
		_ = bs.trainRepo.ReleaseSeat(ctx, trainID, req.ClassType)
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	return &models.TicketDetail{
		Ticket: *created,
		Train: &models.TrainSummary{
			ID:            train.ID,
			TrainNumber:   train.TrainNumber,
			TrainName:     train.TrainName,
			Source:        train.Source,
			Destination:   train.Destination,
			DepartureTime: train.DepartureTime,
			ArrivalTime:   train.ArrivalTime,
		},
	}, nil
}

// CancelTicket flips the ticket to cancelled and returns its seat to the pool.
// Only the owner may cancel. The status flip is the conditional update that
// makes the seat release happen at most once per ticket.
func (bs *BookingService) CancelTicket(ctx context.Context, ticketID, requesterID primitive.ObjectID) (*models.Ticket, error) {
	ticket, err := bs.ticketRepo.GetTicketByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if ticket.UserID != requesterID {
		return nil, models.ErrNotAuthorized
	}

	if err := bs.ticketRepo.MarkCancelled(ctx, ticketID); err != nil {
		return nil, err
	}

	// Train deletion is blocked while booked tickets reference it, so the
	// release can only fail on a storage error.
	if err := bs.trainRepo.ReleaseSeat(ctx, ticket.TrainID, ticket.ClassType); err != nil {
		return nil, fmt.Errorf("ticket cancelled but seat release failed: %w", err)
	}

	ticket.Status = models.StatusCancelled
	return ticket, nil
}
