package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railbook/railbook/internal/helpers"
	"github.com/railbook/railbook/internal/middleware"
	"github.com/railbook/railbook/internal/models"
	"github.com/railbook/railbook/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func requesterID(c *gin.Context) (primitive.ObjectID, *helpers.CustomClaims, bool) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return primitive.NilObjectID, nil, false
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
		return primitive.NilObjectID, nil, false
	}
	return userID, claims, true
}

func BookTicket(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := requesterID(c)
		if !ok {
			return
		}

		var req models.BookTicketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		ticket, err := bs.BookTicket(c.Request.Context(), userID, &req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(ticket, "Ticket booked successfully"))
	}
}

func GetUserTickets(qs *services.QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := requesterID(c)
		if !ok {
			return
		}

		tickets, err := qs.ListUserTickets(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.CountedResponse(tickets, len(tickets)))
	}
}

func GetTicket(qs *services.QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, claims, ok := requesterID(c)
		if !ok {
			return
		}

		ticketID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid ticket ID format"))
			return
		}

		ticket, err := qs.GetTicket(c.Request.Context(), ticketID, userID, claims.IsAdmin())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(ticket, ""))
	}
}

func CancelTicket(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := requesterID(c)
		if !ok {
			return
		}

		ticketID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid ticket ID format"))
			return
		}

		ticket, err := bs.CancelTicket(c.Request.Context(), ticketID, userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(ticket, "Ticket cancelled successfully"))
	}
}

func GetAllTickets(qs *services.QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tickets, err := qs.ListAllTickets(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.CountedResponse(tickets, len(tickets)))
	}
}
