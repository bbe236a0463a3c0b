package cron

import (
	"fmt"
	"time"

	"github.com/coursebox/content-api/model"
)

// PruneOrphanedProgress deletes progress rows pointing at deleted courses.
// Cascade deletion already removes these inline; this job catches rows left
// behind by interrupted deletions.
func (m *CronManager) PruneOrphanedProgress() {
	jobName := "prune_orphaned_progress"

	result := m.db.
		Where("course_id NOT IN (?)", m.db.Model(&model.Course{}).Select("id")).
		Delete(&model.UserProgress{})
	if result.Error != nil {
		m.logJobError(jobName, result.Error)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Pruned %d orphaned progress rows", result.RowsAffected))
}

// AggregateContentStatistics computes catalog-wide counts for monitoring
func (m *CronManager) AggregateContentStatistics() {
	jobName := "aggregate_content_statistics"

	var courses, published, units, questions, enrollments int64

	if err := m.db.Model(&model.Course{}).Count(&courses).Error; err != nil {
		m.logJobError(jobName, err)
		return
	}
	if err := m.db.Model(&model.Course{}).Where("is_published = ?", true).Count(&published).Error; err != nil {
		m.logJobError(jobName, err)
		return
	}
	if err := m.db.Model(&model.Unit{}).Count(&units).Error; err != nil {
		m.logJobError(jobName, err)
		return
	}
	if err := m.db.Model(&model.Question{}).Count(&questions).Error; err != nil {
		m.logJobError(jobName, err)
		return
	}
	if err := m.db.Model(&model.UserProgress{}).Count(&enrollments).Error; err != nil {
		m.logJobError(jobName, err)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf(
		"courses=%d published=%d units=%d questions=%d enrollments=%d",
		courses, published, units, questions, enrollments,
	))
}

// CleanupJobLogs trims cron job logs older than 30 days
func (m *CronManager) CleanupJobLogs() {
	jobName := "cleanup_job_logs"

	cutoff := time.Now().AddDate(0, 0, -30)
	result := m.db.Where("started_at < ?", cutoff).Delete(&model.CronJobLog{})
	if result.Error != nil {
		m.logJobError(jobName, result.Error)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Deleted %d old job logs", result.RowsAffected))
}
