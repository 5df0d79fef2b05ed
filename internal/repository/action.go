package repository

import (
	"filesync/internal/db"
	"filesync/internal/model"
)

type ActionRepository struct{}

func NewActionRepository() *ActionRepository {
	return &ActionRepository{}
}

func (r *ActionRepository) SaveAll(actions []model.Action) error {
	if len(actions) == 0 {
		return nil
	}

	return db.DB.Create(&actions).Error
}

func (r *ActionRepository) GetRecent(limit int) ([]model.Action, error) {
	var actions []model.Action
	result := db.DB.
		Order("applied_at desc, id desc").
		Limit(limit).
		Find(&actions)

	return actions, result.Error
}

func (r *ActionRepository) GetByRun(runID string) ([]model.Action, error) {
	var actions []model.Action
	result := db.DB.
		Where("run_id = ?", runID).
		Order("id asc").
		Find(&actions)

	return actions, result.Error
}

type Stats struct {
	Total   int64 `json:"total"`
	Copied  int64 `json:"copied"`
	Removed int64 `json:"removed"`
}

func (r *ActionRepository) GetStats() (Stats, error) {
	var stats Stats
	if err := db.DB.Model(&model.Action{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}

	if err := db.DB.Model(&model.Action{}).
		Where("op = ?", model.OpCopy).
		Count(&stats.Copied).Error; err != nil {
		return stats, err
	}

	stats.Removed = stats.Total - stats.Copied
	return stats, nil
}
