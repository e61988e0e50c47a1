package services

import (
	"errors"
	"fmt"

	"formhub/models"

	"gorm.io/gorm"
)

// AnswerService is the answer collector: it accepts submissions against
// published forms and keeps the response counter.
type AnswerService struct {
	db  *gorm.DB
	hub *Hub
}

func NewAnswerService(db *gorm.DB, hub *Hub) *AnswerService {
	return &AnswerService{db: db, hub: hub}
}

type AnswerItem struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Response   string `json:"response"`
}

// Submit records one submission event for a published form. Duplicate
// question ids collapse last-write-wins; question ids are not validated
// against the form's question set and required flags are not enforced.
func (s *AnswerService) Submit(publicID string, items []AnswerItem) (*models.Answer, error) {
	var form models.Form
	if err := s.db.Where("public_id = ?", publicID).First(&form).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: the link does not exist", ErrNotFound)
		}
		return nil, err
	}

	if !form.IsPublished {
		return nil, fmt.Errorf("%w: form is not published yet", ErrForbidden)
	}

	values := make(map[uint]string, len(items))
	for _, item := range items {
		values[item.QuestionID] = item.Response
	}

	answer := models.Answer{
		FormID: form.ID,
		Values: values,
	}

	if err := s.db.Create(&answer).Error; err != nil {
		return nil, err
	}

	// Single-statement increment; N concurrent submissions count N.
	if err := s.db.Model(&models.Form{}).Where("id = ?", form.ID).
		UpdateColumn("responses_count", gorm.Expr("responses_count + 1")).Error; err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastSubmission(form.ID, &answer)
	}

	return &answer, nil
}
