package handlers

import (
	"net/http"
	"strconv"

	"formhub/services"

	"github.com/gin-gonic/gin"
)

type FormHandler struct {
	formService    *services.FormService
	publishService *services.PublishService
}

func NewFormHandler(formService *services.FormService, publishService *services.PublishService) *FormHandler {
	return &FormHandler{
		formService:    formService,
		publishService: publishService,
	}
}

func (h *FormHandler) CreateForm(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	var req services.CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := h.formService.CreateForm(email, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, form)
}

func (h *FormHandler) GetUserForms(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	forms, err := h.formService.GetUserForms(email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, forms)
}

func (h *FormHandler) GetUserPublishedForms(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	forms, err := h.formService.GetUserPublishedForms(email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, forms)
}

func (h *FormHandler) GetFormByID(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	formID, err := parseID(c)
	if err != nil {
		return
	}

	form, err := h.formService.GetFormByID(formID, email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *FormHandler) UpdateForm(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	formID, err := parseID(c)
	if err != nil {
		return
	}

	var req services.UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := h.formService.UpdateForm(formID, email, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *FormHandler) DeleteForm(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	formID, err := parseID(c)
	if err != nil {
		return
	}

	if err := h.formService.DeleteForm(formID, email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Form deleted successfully"})
}

func (h *FormHandler) PublishForm(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	formID, err := parseID(c)
	if err != nil {
		return
	}

	link, err := h.publishService.Publish(formID, email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Form published successfully", "link": link})
}

type accessSettingsRequest struct {
	Password string `json:"password"`
}

// SetAccessMode changes the access mode of every published form the caller
// owns; the mode comes from the path, the optional password from the body.
func (h *FormHandler) SetAccessMode(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	mode := c.Param("mode")

	var req accessSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.publishService.SetAccessMode(email, mode, req.Password); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Form settings changed successfully"})
}

func (h *FormHandler) GetFormAnswers(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	formID, err := parseID(c)
	if err != nil {
		return
	}

	answers, err := h.formService.GetFormAnswers(formID, email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, answers)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form ID"})
		return 0, err
	}
	return uint(id), nil
}
