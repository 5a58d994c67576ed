// Seeds the catalog with sample trains and, when SEED_ADMIN_EMAIL and
// SEED_ADMIN_PASSWORD are set, an admin account. Existing trains are replaced.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/railbook/railbook/internal/config"
	"github.com/railbook/railbook/internal/connect"
	"github.com/railbook/railbook/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

var sampleTrains = []*models.Train{
	{
		TrainNumber:   "12301",
		TrainName:     "Rajdhani Express",
		Source:        "New Delhi",
		Destination:   "Mumbai",
		DepartureTime: "16:55",
		ArrivalTime:   "08:35",
		Classes: []models.ClassInventory{
			{Type: models.ClassSleeper, AvailableSeats: 72, TotalSeats: 72, Price: 850},
			{Type: models.Class3AC, AvailableSeats: 64, TotalSeats: 64, Price: 1450},
			{Type: models.Class2AC, AvailableSeats: 48, TotalSeats: 48, Price: 2050},
			{Type: models.Class1AC, AvailableSeats: 24, TotalSeats: 24, Price: 3500},
		},
		Days:   []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
		Active: true,
	},
	{
		TrainNumber:   "12302",
		TrainName:     "Shatabdi Express",
		Source:        "Chennai",
		Destination:   "Bangalore",
		DepartureTime: "06:00",
		ArrivalTime:   "11:30",
		Classes: []models.ClassInventory{
			{Type: models.Class3AC, AvailableSeats: 48, TotalSeats: 48, Price: 950},
			{Type: models.Class2AC, AvailableSeats: 32, TotalSeats: 32, Price: 1350},
			{Type: models.Class1AC, AvailableSeats: 16, TotalSeats: 16, Price: 2200},
		},
		Days:   []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
		Active: true,
	},
	{
		TrainNumber:   "12303",
		TrainName:     "Duronto Express",
		Source:        "Kolkata",
		Destination:   "New Delhi",
		DepartureTime: "22:20",
		ArrivalTime:   "10:30",
		Classes: []models.ClassInventory{
			{Type: models.ClassSleeper, AvailableSeats: 80, TotalSeats: 80, Price: 720},
			{Type: models.Class3AC, AvailableSeats: 56, TotalSeats: 56, Price: 1250},
			{Type: models.Class2AC, AvailableSeats: 40, TotalSeats: 40, Price: 1800},
		},
		Days:   []string{"Monday", "Wednesday", "Friday", "Sunday"},
		Active: true,
	},
	{
		TrainNumber:   "12304",
		TrainName:     "Garib Rath",
		Source:        "Jaipur",
		Destination:   "Mumbai",
		DepartureTime: "18:30",
		ArrivalTime:   "08:00",
		Classes: []models.ClassInventory{
			{Type: models.ClassSleeper, AvailableSeats: 90, TotalSeats: 90, Price: 650},
			{Type: models.Class3AC, AvailableSeats: 72, TotalSeats: 72, Price: 980},
		},
		Days:   []string{"Tuesday", "Thursday", "Saturday"},
		Active: true,
	},
	{
		TrainNumber:   "12305",
		TrainName:     "Vande Bharat Express",
		Source:        "New Delhi",
		Destination:   "Varanasi",
		DepartureTime: "06:00",
		ArrivalTime:   "14:00",
		Classes: []models.ClassInventory{
			{Type: models.Class2AC, AvailableSeats: 56, TotalSeats: 56, Price: 1650},
			{Type: models.Class1AC, AvailableSeats: 32, TotalSeats: 32, Price: 2950},
		},
		Days:   []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
		Active: true,
	},
}

func main() {
	_ = godotenv.Load(".env")

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	client, err := connect.MongoDBConnect(cfg.MongoDBURI)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := connect.MongoDBDisconnect(); err != nil {
			logger.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := connect.EnsureIndexes(ctx, client); err != nil {
		logger.Error("Failed to create indexes", "error", err)
		os.Exit(1)
	}

	trainCol := client.Database(models.DbName).Collection(models.TrainColName)
	if _, err := trainCol.DeleteMany(ctx, bson.M{}); err != nil {
		logger.Error("Failed to clear trains", "error", err)
		os.Exit(1)
	}
	logger.Info("Cleared existing trains")

	repo := models.MongodbNewRepo(client)
	for _, train := range sampleTrains {
		if err := train.ValidateTrain(); err != nil {
			logger.Error("Invalid sample train", "trainNumber", train.TrainNumber, "error", err)
			os.Exit(1)
		}
		created, err := repo.CreateTrain(ctx, train)
		if err != nil {
			logger.Error("Failed to seed train", "trainNumber", train.TrainNumber, "error", err)
			os.Exit(1)
		}
		logger.Info("Seeded train",
			"trainNumber", created.TrainNumber,
			"trainName", created.TrainName,
			"source", created.Source,
			"destination", created.Destination,
		)
	}

	if email, password := os.Getenv("SEED_ADMIN_EMAIL"), os.Getenv("SEED_ADMIN_PASSWORD"); email != "" && password != "" {
		admin := &models.User{
			Name:  "Administrator",
			Email: email,
			Role:  models.RoleAdmin,
		}
		if err := admin.SetPassword(password); err != nil {
			logger.Error("Failed to hash admin password", "error", err)
			os.Exit(1)
		}
		if _, err := repo.CreateUser(ctx, admin); err != nil {
			if errors.Is(err, models.ErrEmailTaken) {
				logger.Info("Admin account already exists", "email", email)
			} else {
				logger.Error("Failed to seed admin account", "error", err)
				os.Exit(1)
			}
		} else {
			logger.Info("Seeded admin account", "email", email)
		}
	}

	logger.Info("Seeding complete", "trains", len(sampleTrains))
}
