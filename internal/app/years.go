package app

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/watsonshih/nsysu-isi-ae/internal/models"
	"github.com/watsonshih/nsysu-isi-ae/internal/observability"
)

// CreateAdmissionYear adds a cohort label. Years are create-only; nothing
// ever edits or deletes one.
func (a *App) CreateAdmissionYear(ctx context.Context, year string) error {
	year = strings.TrimSpace(year)
	if _, err := strconv.Atoi(year); err != nil || year == "" {
		return validationf("admission year must be a number, got %q", year)
	}
	if a.cache.HasAdmissionYear(year) {
		return validationf("admission year %s already exists", year)
	}
	y := models.AdmissionYear{Year: year, CreatedAt: a.now()}
	if err := a.store.PutAdmissionYear(ctx, y); err != nil {
		observability.CaptureErr(err)
		return err
	}
	a.cache.AddAdmissionYear(y)
	a.notify()
	a.log.Info("admission year created", zap.String("year", year))
	return nil
}
