package repository

import (
	"syncsweep/internal/db"
	"syncsweep/internal/model"
	"time"
)

type ResolutionRepository struct{}

func NewResolutionRepository() *ResolutionRepository {
	return &ResolutionRepository{}
}

func (r *ResolutionRepository) Save(result model.ActionResult) error {
	status := model.StatusApplied
	errMsg := ""

	switch {
	case result.Err != nil:
		status = model.StatusFailed
		errMsg = result.Err.Error()
	case result.Skipped:
		status = model.StatusSkipped
	}

	resolution := model.Resolution{
		ConflictPath: result.Plan.Record.ConflictPath,
		OriginalPath: result.Plan.Record.OriginalPath,
		Disposition:  result.Plan.Disposition,
		Status:       status,
		ErrMsg:       errMsg,
		ConflictTime: result.Plan.Record.Timestamp,
		ResolvedAt:   time.Now(),
	}

	return db.DB.Create(&resolution).Error
}

type Stats struct {
	Total   int64
	Applied int64
	Failed  int64
}

func (r *ResolutionRepository) GetStats() (Stats, error) {
	var stats Stats
	if err := db.DB.Model(&model.Resolution{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}

	if err := db.DB.Model(&model.Resolution{}).
		Where("status = ?", model.StatusApplied).
		Count(&stats.Applied).Error; err != nil {
		return stats, err
	}

	if err := db.DB.Model(&model.Resolution{}).
		Where("status = ?", model.StatusFailed).
		Count(&stats.Failed).Error; err != nil {
		return stats, err
	}

	return stats, nil
}

func (r *ResolutionRepository) GetRecent(limit int) ([]model.Resolution, error) {
	var resolutions []model.Resolution
	result := db.DB.
		Order("resolved_at desc").
		Limit(limit).
		Find(&resolutions)

	return resolutions, result.Error
}

func (r *ResolutionRepository) GetFailed() ([]model.Resolution, error) {
	var resolutions []model.Resolution
	result := db.DB.
		Where("status = ?", model.StatusFailed).
		Order("resolved_at desc").
		Find(&resolutions)

	return resolutions, result.Error
}
