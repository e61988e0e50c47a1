package services

import (
	"errors"
	"fmt"

	"formhub/models"

	"gorm.io/gorm"
)

type FormService struct {
	db    *gorm.DB
	cache *FormCache
}

func NewFormService(db *gorm.DB, cache *FormCache) *FormService {
	return &FormService{db: db, cache: cache}
}

type CreateFormRequest struct {
	Title       string                  `json:"title" binding:"required"`
	Description string                  `json:"description"`
	Questions   []CreateQuestionRequest `json:"questions"`
}

type CreateQuestionRequest struct {
	Title       string   `json:"title" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	Options     []string `json:"options"`
	Required    bool     `json:"required"`
	Description string   `json:"description"`
	Order       int      `json:"order"`
}

type UpdateFormRequest struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Questions   []CreateQuestionRequest `json:"questions"`
}

// CreateForm creates an unpublished form together with its questions in one
// transaction.
func (s *FormService) CreateForm(ownerEmail string, req *CreateFormRequest) (*models.Form, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	form := models.Form{
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   ownerEmail,
		IsPublished: false,
		AccessMode:  models.AccessPublic,
	}

	if err := tx.Create(&form).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, qReq := range req.Questions {
		question := models.Question{
			FormID:      form.ID,
			Title:       qReq.Title,
			Type:        qReq.Type,
			Options:     qReq.Options,
			Required:    qReq.Required,
			Description: qReq.Description,
			Order:       qReq.Order,
		}
		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetFormByID(form.ID, ownerEmail)
}

func (s *FormService) GetUserForms(ownerEmail string) ([]models.Form, error) {
	var forms []models.Form
	err := s.db.Where("created_by = ?", ownerEmail).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.\"order\"")
		}).
		Order("created_at DESC").
		Find(&forms).Error
	return forms, err
}

func (s *FormService) GetUserPublishedForms(ownerEmail string) ([]models.Form, error) {
	var forms []models.Form
	err := s.db.Where("created_by = ? AND is_published = ?", ownerEmail, true).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.\"order\"")
		}).
		Order("created_at DESC").
		Find(&forms).Error
	return forms, err
}

// GetFormByID returns the form only to its owner; a form owned by someone
// else answers Forbidden, not NotFound, matching the numeric-id probing
// behavior of the API contract.
func (s *FormService) GetFormByID(formID uint, callerEmail string) (*models.Form, error) {
	var form models.Form
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.\"order\"")
		}).
		First(&form, formID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: form %d", ErrNotFound, formID)
		}
		return nil, err
	}

	if form.CreatedBy != callerEmail {
		return nil, fmt.Errorf("%w: not the form owner", ErrForbidden)
	}

	return &form, nil
}

// UpdateForm updates title/description and, when questions are supplied,
// replaces the whole question set.
func (s *FormService) UpdateForm(formID uint, callerEmail string, req *UpdateFormRequest) (*models.Form, error) {
	form, err := s.GetFormByID(formID, callerEmail)
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if req.Title != "" {
		form.Title = req.Title
	}
	if req.Description != "" {
		form.Description = req.Description
	}

	form.Questions = nil
	if err := tx.Save(form).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if req.Questions != nil {
		if err := tx.Where("form_id = ?", formID).Delete(&models.Question{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		for _, qReq := range req.Questions {
			question := models.Question{
				FormID:      form.ID,
				Title:       qReq.Title,
				Type:        qReq.Type,
				Options:     qReq.Options,
				Required:    qReq.Required,
				Description: qReq.Description,
				Order:       qReq.Order,
			}
			if err := tx.Create(&question).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.cache.Invalidate(form.PublicID)
	return s.GetFormByID(form.ID, callerEmail)
}

// DeleteForm removes the form together with its questions and answers.
func (s *FormService) DeleteForm(formID uint, callerEmail string) error {
	form, err := s.GetFormByID(formID, callerEmail)
	if err != nil {
		return err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Orphan removal: soft deletes do not fire the FK cascade, so children
	// go explicitly.
	if err := tx.Where("form_id = ?", formID).Delete(&models.Answer{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("form_id = ?", formID).Delete(&models.Question{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&models.Form{}, formID).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.cache.Invalidate(form.PublicID)
	return nil
}

// GetFormAnswers lists collected answers, owner only.
func (s *FormService) GetFormAnswers(formID uint, callerEmail string) ([]models.Answer, error) {
	if _, err := s.GetFormByID(formID, callerEmail); err != nil {
		return nil, err
	}

	var answers []models.Answer
	err := s.db.Where("form_id = ?", formID).Order("created_at").Find(&answers).Error
	return answers, err
}
