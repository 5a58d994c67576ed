package models

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TrainRepo interface {
	CreateTrain(ctx context.Context, train *Train) (*Train, error)
	GetTrainByID(ctx context.Context, id primitive.ObjectID) (*Train, error)
	SearchTrains(ctx context.Context, source, destination string) ([]*Train, error)
	UpdateTrain(ctx context.Context, id primitive.ObjectID, train *Train) (*Train, error)
	DeleteTrain(ctx context.Context, id primitive.ObjectID) error

	// ReserveSeat decrements availableSeats for the given class as a single
	// conditional update: the decrement only applies while availableSeats > 0,
	// so concurrent bookings of the last seat resolve to exactly one winner.
	// Returns the train as it looks after the decrement.
	ReserveSeat(ctx context.Context, trainID primitive.ObjectID, classType string) (*Train, error)

	// ReleaseSeat returns one seat to the pool. Callers must only invoke it
	// after winning the booked->cancelled status flip (or when rolling back a
	// reserve), which guarantees availableSeats < totalSeats.
	ReleaseSeat(ctx context.Context, trainID primitive.ObjectID, classType string) error
}

func (mdb *MongodbRepo) CreateTrain(ctx context.Context, train *Train) (*Train, error) {
	col, err := mdb.GetCollection(ctx, DbName, TrainColName)
	if err != nil {
		return nil, err
	}
	train.BeforeCreate()
	if _, err := col.InsertOne(ctx, train); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateTrainNumber
		}
		return nil, fmt.Errorf("failed to insert train: %w", err)
	}
	return train, nil
}

func (mdb *MongodbRepo) GetTrainByID(ctx context.Context, id primitive.ObjectID) (*Train, error) {
	col, err := mdb.GetCollection(ctx, DbName, TrainColName)
	if err != nil {
		return nil, err
	}
	var train Train
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&train); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTrainNotFound
		}
		return nil, fmt.Errorf("failed to fetch train: %w", err)
	}
	return &train, nil
}

func (mdb *MongodbRepo) SearchTrains(ctx context.Context, source, destination string) ([]*Train, error) {
	col, err := mdb.GetCollection(ctx, DbName, TrainColName)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"active": true}
	if source != "" {
		filter["source"] = primitive.Regex{Pattern: regexp.QuoteMeta(source), Options: "i"}
	}
	if destination != "" {
		filter["destination"] = primitive.Regex{Pattern: regexp.QuoteMeta(destination), Options: "i"}
	}

	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search trains: %w", err)
	}
	defer cursor.Close(ctx)

	trains := []*Train{}
	if err := cursor.All(ctx, &trains); err != nil {
		return nil, fmt.Errorf("failed to decode trains: %w", err)
	}
	return trains, nil
}

func (mdb *MongodbRepo) UpdateTrain(ctx context.Context, id primitive.ObjectID, train *Train) (*Train, error) {
	col, err := mdb.GetCollection(ctx, DbName, TrainColName)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"trainNumber":   train.TrainNumber,
		"trainName":     train.TrainName,
		"source":        train.Source,
		"destination":   train.Destination,
		"departureTime": train.DepartureTime,
		"arrivalTime":   train.ArrivalTime,
		"classes":       train.Classes,
		"days":          train.Days,
		"active":        train.Active,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated Train
	if err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTrainNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateTrainNumber
		}
		return nil, fmt.Errorf("failed to update train: %w", err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) DeleteTrain(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, DbName, TrainColName)
	if err != nil {
		return err
	}
	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete train: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrTrainNotFound
	}
	return nil
}

func (mdb *MongodbRepo) ReserveSeat(ctx context.Context, trainID primitive.ObjectID, classType string) (*Train, error) {
	col, err := mdb.GetCollection(ctx, DbName, TrainColName)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"_id":    trainID,
		"active": true,
		"classes": bson.M{"$elemMatch": bson.M{
			"type":           classType,
			"availableSeats": bson.M{"$gt": 0},
		}},
	}
	update := bson.M{"$inc": bson.M{"classes.$.availableSeats": -1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var train Train
	err = col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&train)
	if err == nil {
		return &train, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to reserve seat: %w", err)
	}

	// No document matched; re-read once to tell the caller why.
	existing, lookupErr := mdb.GetTrainByID(ctx, trainID)
	if lookupErr != nil {
		return nil, lookupErr
	}
	if !existing.Active {
		return nil, ErrTrainNotFound
	}
	if existing.Class(classType) == nil {
		return nil, ErrClassNotFound
	}
	return nil, ErrSeatsUnavailable
}

func (mdb *MongodbRepo) ReleaseSeat(ctx context.Context, trainID primitive.ObjectID, classType string) error {
	col, err := mdb.GetCollection(ctx, DbName, TrainColName)
	if err != nil {
		return err
	}

	filter := bson.M{
		"_id":     trainID,
		"classes": bson.M{"$elemMatch": bson.M{"type": classType}},
	}
	update := bson.M{"$inc": bson.M{"classes.$.availableSeats": 1}}

	res, err := col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to release seat: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrClassNotFound
	}
	return nil
}
