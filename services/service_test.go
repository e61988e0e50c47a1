package services

import (
	"fmt"
	"testing"

	"formhub/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a per-test in-memory database with the full schema. The
// shared-cache URI keeps the database alive across pooled connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Form{},
		&models.Question{},
		&models.Answer{},
	)
	require.NoError(t, err)

	return db
}

// newTestCache returns a cache with no Redis behind it, so cache calls are
// no-ops in tests.
func newTestCache() *FormCache {
	return NewFormCache(nil)
}

func createForm(t *testing.T, db *gorm.DB, form *models.Form) *models.Form {
	t.Helper()
	require.NoError(t, db.Create(form).Error)
	return form
}

type recordingMailer struct {
	sent []sentMail
}

type sentMail struct {
	to      string
	subject string
}

func (m *recordingMailer) Send(to, subject, _ string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject})
	return nil
}
