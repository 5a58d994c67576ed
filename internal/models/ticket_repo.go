package models

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TicketRepo interface {
	CreateTicket(ctx context.Context, ticket *Ticket) (*Ticket, error)
	GetTicketByID(ctx context.Context, id primitive.ObjectID) (*Ticket, error)
	ListTicketsByUser(ctx context.Context, userID primitive.ObjectID) ([]*Ticket, error)
	ListAllTickets(ctx context.Context) ([]*Ticket, error)

	// MarkCancelled flips a ticket to cancelled as a conditional update that
	// only matches while the ticket is not cancelled yet. Exactly one caller
	// can win the flip, so the paired seat release happens at most once.
	MarkCancelled(ctx context.Context, id primitive.ObjectID) error

	CountBookedByTrain(ctx context.Context, trainID primitive.ObjectID) (int64, error)
}

func (mdb *MongodbRepo) CreateTicket(ctx context.Context, ticket *Ticket) (*Ticket, error) {
	col, err := mdb.GetCollection(ctx, DbName, TicketColName)
	if err != nil {
		return nil, err
	}
	if err := ticket.BeforeCreate(); err != nil {
		return nil, err
	}
	if _, err := col.InsertOne(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to insert ticket: %w", err)
	}
	return ticket, nil
}

func (mdb *MongodbRepo) GetTicketByID(ctx context.Context, id primitive.ObjectID) (*Ticket, error) {
	col, err := mdb.GetCollection(ctx, DbName, TicketColName)
	if err != nil {
		return nil, err
	}
	var ticket Ticket
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&ticket); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to fetch ticket: %w", err)
	}
	return &ticket, nil
}

func (mdb *MongodbRepo) ListTicketsByUser(ctx context.Context, userID primitive.ObjectID) ([]*Ticket, error) {
	return mdb.listTickets(ctx, bson.M{"user": userID})
}

func (mdb *MongodbRepo) ListAllTickets(ctx context.Context) ([]*Ticket, error) {
	return mdb.listTickets(ctx, bson.M{})
}

func (mdb *MongodbRepo) listTickets(ctx context.Context, filter bson.M) ([]*Ticket, error) {
	col, err := mdb.GetCollection(ctx, DbName, TicketColName)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer cursor.Close(ctx)

	tickets := []*Ticket{}
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, fmt.Errorf("failed to decode tickets: %w", err)
	}
	return tickets, nil
}

func (mdb *MongodbRepo) MarkCancelled(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, DbName, TicketColName)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": id, "status": bson.M{"$ne": StatusCancelled}}
	update := bson.M{"$set": bson.M{"status": StatusCancelled}}

	res, err := col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to cancel ticket: %w", err)
	}
	if res.MatchedCount == 0 {
		// Missing ticket and already-cancelled ticket both fail the filter.
		if _, lookupErr := mdb.GetTicketByID(ctx, id); lookupErr != nil {
			return lookupErr
		}
		return ErrAlreadyCancelled
	}
	return nil
}

func (mdb *MongodbRepo) CountBookedByTrain(ctx context.Context, trainID primitive.ObjectID) (int64, error) {
	col, err := mdb.GetCollection(ctx, DbName, TicketColName)
	if err != nil {
		return 0, err
	}
	count, err := col.CountDocuments(ctx, bson.M{"train": trainID, "status": StatusBooked})
	if err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return count, nil
}
