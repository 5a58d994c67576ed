package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railbook/railbook/internal/models"
	"github.com/railbook/railbook/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func SearchTrains(qs *services.QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		source := c.Query("source")
		destination := c.Query("destination")

		trains, err := qs.SearchTrains(c.Request.Context(), source, destination)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.CountedResponse(trains, len(trains)))
	}
}

func GetTrain(qs *services.QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		trainID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid train ID format"))
			return
		}

		train, err := qs.GetTrain(c.Request.Context(), trainID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(train, ""))
	}
}

func CreateTrain(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var train models.Train
		if err := c.ShouldBindJSON(&train); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := cs.CreateTrain(c.Request.Context(), &train)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Train created successfully"))
	}
}

func UpdateTrain(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		trainID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid train ID format"))
			return
		}

		var train models.Train
		if err := c.ShouldBindJSON(&train); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		updated, err := cs.UpdateTrain(c.Request.Context(), trainID, &train)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Train updated successfully"))
	}
}

func DeleteTrain(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		trainID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid train ID format"))
			return
		}

		if err := cs.DeleteTrain(c.Request.Context(), trainID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Train deleted successfully"))
	}
}
