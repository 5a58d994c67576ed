package services

import (
	"context"
	"strings"

	"github.com/railbook/railbook/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QueryService is the read side: train search and ticket lookups.
type QueryService struct {
	trainRepo  models.TrainRepo
	ticketRepo models.TicketRepo
}

func NewQueryService(trainRepo models.TrainRepo, ticketRepo models.TicketRepo) *QueryService {
	return &QueryService{
		trainRepo:  trainRepo,
		ticketRepo: ticketRepo,
	}
}

// SearchTrains matches active trains whose source/destination contain the given
// fragments, case-insensitively. Empty filters match everything.
func (qs *QueryService) SearchTrains(ctx context.Context, source, destination string) ([]*models.Train, error) {
	return qs.trainRepo.SearchTrains(ctx, strings.TrimSpace(source), strings.TrimSpace(destination))
}

func (qs *QueryService) GetTrain(ctx context.Context, id primitive.ObjectID) (*models.Train, error) {
	return qs.trainRepo.GetTrainByID(ctx, id)
}

func (qs *QueryService) ListUserTickets(ctx context.Context, userID primitive.ObjectID) ([]*models.TicketDetail, error) {
	tickets, err := qs.ticketRepo.ListTicketsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return qs.attachTrains(ctx, tickets), nil
}

// GetTicket enforces ownership: only the owner or an admin may read a ticket.
func (qs *QueryService) GetTicket(ctx context.Context, id, requesterID primitive.ObjectID, isAdmin bool) (*models.TicketDetail, error) {
	ticket, err := qs.ticketRepo.GetTicketByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != requesterID && !isAdmin {
		return nil, models.ErrNotAuthorized
	}
	detail := qs.attachTrains(ctx, []*models.Ticket{ticket})
	return detail[0], nil
}

func (qs *QueryService) ListAllTickets(ctx context.Context) ([]*models.TicketDetail, error) {
	tickets, err := qs.ticketRepo.ListAllTickets(ctx)
	if err != nil {
		return nil, err
	}
	return qs.attachTrains(ctx, tickets), nil
}

// attachTrains decorates tickets with train display fields. A missing train
// (historical data predating the deletion guard) leaves the summary nil rather
// than failing the read.
func (qs *QueryService) attachTrains(ctx context.Context, tickets []*models.Ticket) []*models.TicketDetail {
	summaries := make(map[primitive.ObjectID]*models.TrainSummary, len(tickets))
	details := make([]*models.TicketDetail, 0, len(tickets))
	for _, ticket := range tickets {
		summary, seen := summaries[ticket.TrainID]
		if !seen {
			if train, err := qs.trainRepo.GetTrainByID(ctx, ticket.TrainID); err == nil {
				summary = &models.TrainSummary{
					ID:            train.ID,
					TrainNumber:   train.TrainNumber,
					TrainName:     train.TrainName,
					Source:        train.Source,
					Destination:   train.Destination,
					DepartureTime: train.DepartureTime,
					ArrivalTime:   train.ArrivalTime,
				}
			}
			summaries[ticket.TrainID] = summary
		}
		details = append(details, &models.TicketDetail{Ticket: *ticket, Train: summary})
	}
	return details
}
