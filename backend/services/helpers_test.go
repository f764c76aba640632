package services

import (
	"testing"
	"time"

	"readquest/backend/testutil"
	"readquest/backend/utils"

	"gorm.io/gorm"
)

var testNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func newTestServices(t *testing.T, opts Options) (*Services, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	if opts.Now == nil {
		opts.Now = testutil.FixedClock(testNow)
	}
	opts.BcryptCost = 4
	return New(db, opts, utils.NewNopLogger()), db
}

func testIdentity(id string) utils.Identity {
	return utils.Identity{UserID: id, Email: id + "@lecco.it", FirstName: id}
}
