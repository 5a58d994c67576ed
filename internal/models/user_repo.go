package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error)
}

func (mdb *MongodbRepo) CreateUser(ctx context.Context, user *User) (*User, error) {
	col, err := mdb.GetCollection(ctx, DbName, UserColName)
	if err != nil {
		return nil, err
	}
	user.BeforeCreate()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if _, err := col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

func (mdb *MongodbRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	col, err := mdb.GetCollection(ctx, DbName, UserColName)
	if err != nil {
		return nil, err
	}
	var user User
	filter := bson.M{"email": strings.ToLower(strings.TrimSpace(email))}
	if err := col.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	col, err := mdb.GetCollection(ctx, DbName, UserColName)
	if err != nil {
		return nil, err
	}
	var user User
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}
