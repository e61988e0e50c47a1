package services

import (
	"errors"
	"fmt"

	"formhub/models"

	"gorm.io/gorm"
)

// AccessService is the access mode resolver: it decides whether a view
// request against a published form is granted, and keeps the view counter.
type AccessService struct {
	db    *gorm.DB
	cache *FormCache
}

func NewAccessService(db *gorm.DB, cache *FormCache) *AccessService {
	return &AccessService{db: db, cache: cache}
}

// ViewPublicForm resolves a view request addressed by public id.
//
// The view counter is bumped before any authorization outcome, refusals
// included. An empty password is treated as "no password given" and routed
// through the public/private branches even when the form's mode is password;
// that request resolves to a mode mismatch (400), not a denial. Both are
// deliberate carried-over behaviors of the original system.
func (s *AccessService) ViewPublicForm(mode, publicID, password, viewerEmail string) (*models.Form, error) {
	if _, ok := models.ParseAccessMode(mode); !ok {
		return nil, fmt.Errorf("%w: unknown access mode %q", ErrBadRequest, mode)
	}

	var form models.Form
	if err := s.db.Where("public_id = ?", publicID).First(&form).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: the link does not exist", ErrNotFound)
		}
		return nil, err
	}

	// Unconditional view counting; single-statement increment so concurrent
	// views never lose an update.
	if err := s.db.Model(&models.Form{}).Where("id = ?", form.ID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		return nil, err
	}
	form.Views++

	if !form.IsPublished {
		return nil, fmt.Errorf("%w: form is not published", ErrForbidden)
	}

	if err := s.resolve(&form, password, viewerEmail); err != nil {
		return nil, err
	}

	return s.loadFull(&form)
}

func (s *AccessService) resolve(form *models.Form, password, viewerEmail string) error {
	if password == "" {
		switch form.AccessMode {
		case models.AccessPublic:
			return nil
		case models.AccessPrivate:
			if viewerEmail == "" {
				return fmt.Errorf("%w: authentication required, this form is %s", ErrUnauthorized, form.AccessMode)
			}
			return nil
		case models.AccessPassword:
			return ErrModeMismatch
		}
	} else {
		switch form.AccessMode {
		case models.AccessPassword:
			if password == form.AccessPassword {
				return nil
			}
			return fmt.Errorf("%w: wrong password, this form is %s", ErrUnauthorized, form.AccessMode)
		case models.AccessPublic, models.AccessPrivate:
			return ErrModeMismatch
		}
	}
	return ErrModeMismatch
}

// loadFull serves the granted form with its questions, through the cache.
func (s *AccessService) loadFull(form *models.Form) (*models.Form, error) {
	if cached := s.cache.Get(form.PublicID); cached != nil {
		cached.Views = form.Views
		return cached, nil
	}

	var full models.Form
	err := s.db.Where("public_id = ?", form.PublicID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.\"order\"")
		}).
		First(&full).Error
	if err != nil {
		return nil, err
	}

	s.cache.Put(&full)
	return &full, nil
}
