package models

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// Validate reads the same binding tags gin uses, so requests reaching a
// service directly get the identical rule set as ones bound by a handler.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

const (
	DbName        = "railbook"
	TrainColName  = "trains"
	TicketColName = "tickets"
	UserColName   = "users"
)

type MongodbRepo struct {
	mongodbClient *mongo.Client
}

func MongodbNewRepo(mongodbClient *mongo.Client) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
	}
}

func (mdb *MongodbRepo) GetCollection(ctx context.Context, dbName, colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	col := mdb.mongodbClient.Database(dbName).Collection(colName)
	return col, nil
}
