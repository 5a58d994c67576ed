package services

import (
	"context"

	"github.com/railbook/railbook/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogService is the admin-facing train catalog: create, update, delete.
type CatalogService struct {
	trainRepo  models.TrainRepo
	ticketRepo models.TicketRepo
}

func NewCatalogService(trainRepo models.TrainRepo, ticketRepo models.TicketRepo) *CatalogService {
	return &CatalogService{
		trainRepo:  trainRepo,
		ticketRepo: ticketRepo,
	}
}

// CreateTrain validates the whole document and inserts it. New trains always
// start active; deactivation is an update concern.
func (cs *CatalogService) CreateTrain(ctx context.Context, train *models.Train) (*models.Train, error) {
	train.Active = true
	if err := train.ValidateTrain(); err != nil {
		return nil, err
	}
	return cs.trainRepo.CreateTrain(ctx, train)
}

// UpdateTrain replaces the train document after whole-document validation.
// PUT semantics: the payload is the full desired state, including the active flag.
func (cs *CatalogService) UpdateTrain(ctx context.Context, id primitive.ObjectID, train *models.Train) (*models.Train, error) {
	if err := train.ValidateTrain(); err != nil {
		return nil, err
	}
	return cs.trainRepo.UpdateTrain(ctx, id, train)
}

// DeleteTrain refuses to orphan issued tickets: while booked tickets reference
// the train, deletion fails and the admin should deactivate instead.
func (cs *CatalogService) DeleteTrain(ctx context.Context, id primitive.ObjectID) error {
	count, err := cs.ticketRepo.CountBookedByTrain(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return models.ErrTrainHasTickets
	}
	return cs.trainRepo.DeleteTrain(ctx, id)
}
