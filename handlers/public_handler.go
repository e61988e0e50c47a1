package handlers

import (
	"net/http"

	"formhub/services"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the respondent-facing surface: fetching a published
// form through its public link and submitting answers to it.
type PublicHandler struct {
	accessService *services.AccessService
	answerService *services.AnswerService
}

func NewPublicHandler(accessService *services.AccessService, answerService *services.AnswerService) *PublicHandler {
	return &PublicHandler{
		accessService: accessService,
		answerService: answerService,
	}
}

// GetPublicForm resolves a view request. The viewer identity is empty for
// anonymous requests; OptionalAuth fills it in when a valid token rides along.
func (h *PublicHandler) GetPublicForm(c *gin.Context) {
	mode := c.Param("mode")
	publicID := c.Param("publicId")
	password := c.Query("password")

	viewerEmail := ""
	if email, exists := c.Get("user_email"); exists {
		viewerEmail = email.(string)
	}

	form, err := h.accessService.ViewPublicForm(mode, publicID, password, viewerEmail)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *PublicHandler) SubmitAnswers(c *gin.Context) {
	publicID := c.Param("publicId")

	var items []services.AnswerItem
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.answerService.Submit(publicID, items); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Response submitted successfully"})
}
