package services

import (
	"errors"
	"fmt"

	"formhub/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PublishService owns the publish state of forms: flipping a form live and
// reissuing its public identifier and link when settings change.
type PublishService struct {
	db      *gorm.DB
	cache   *FormCache
	baseURL string
}

func NewPublishService(db *gorm.DB, cache *FormCache, baseURL string) *PublishService {
	return &PublishService{db: db, cache: cache, baseURL: baseURL}
}

// Publish flips the form to published under a freshly minted public id and
// returns the shareable link. Re-publishing mints a new id; old links die.
func (s *PublishService) Publish(formID uint, callerEmail string) (string, error) {
	var form models.Form
	if err := s.db.First(&form, formID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: form %d", ErrNotFound, formID)
		}
		return "", err
	}

	if form.CreatedBy != callerEmail {
		return "", fmt.Errorf("%w: not the form owner", ErrForbidden)
	}

	oldPublicID := form.PublicID

	form.PublicID = uuid.New().String()
	form.Link = s.buildLink(form.AccessMode, form.PublicID)
	form.IsPublished = true

	if err := s.db.Save(&form).Error; err != nil {
		return "", err
	}

	s.cache.Invalidate(oldPublicID)
	return form.Link, nil
}

// SetAccessMode applies a new access mode to every published form of the
// owner, minting a fresh public id and link for each. Unpublished forms are
// untouched: they pick up whatever mode is current when they get published.
// The password is stored only when the new mode requires one.
func (s *PublishService) SetAccessMode(ownerEmail string, mode string, password string) error {
	accessMode, ok := models.ParseAccessMode(mode)
	if !ok {
		return fmt.Errorf("%w: unknown access mode %q", ErrBadRequest, mode)
	}

	var forms []models.Form
	if err := s.db.Where("created_by = ? AND is_published = ?", ownerEmail, true).Find(&forms).Error; err != nil {
		return err
	}

	for i := range forms {
		form := &forms[i]
		oldPublicID := form.PublicID

		form.AccessMode = accessMode
		form.PublicID = uuid.New().String()
		form.Link = s.buildLink(accessMode, form.PublicID)
		if accessMode == models.AccessPassword {
			form.AccessPassword = password
		}

		if err := s.db.Save(form).Error; err != nil {
			return err
		}

		s.cache.Invalidate(oldPublicID)
	}

	return nil
}

func (s *PublishService) buildLink(mode models.AccessMode, publicID string) string {
	return s.baseURL + "logintype=" + mode.String() + "&form=" + publicID
}
