package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gstbill/internal/numwords"
)

// WordsHandler spells amounts the way they are printed on an invoice.
type WordsHandler struct{}

// NewWordsHandler creates a new WordsHandler.
func NewWordsHandler() *WordsHandler {
	return &WordsHandler{}
}

// Convert handles GET /api/v1/words
// @Summary Amount in words
// @Description Spell a rupee amount on the Indian scale. Fractions are rounded to the nearest rupee.
// @Tags utilities
// @Produce json
// @Param amount query number true "Amount in rupees"
// @Success 200 {object} Response{data=WordsResponse} "Amount in words"
// @Failure 400 {object} ErrorResponseBody "Missing, malformed or negative amount"
// @Failure 422 {object} ErrorResponseBody "Amount beyond the supported range"
// @Router /words [get]
func (h *WordsHandler) Convert(c *gin.Context) {
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "amount must be a number")
		return
	}

	rounded := math.Round(amount)
	if rounded > float64(numwords.MaxAmount) {
		rounded = float64(numwords.MaxAmount) + 1
	}
	words, err := numwords.Convert(int64(rounded))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, WordsResponse{Amount: int64(rounded), Words: words})
}
