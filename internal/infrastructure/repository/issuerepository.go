package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"issuedesk/internal/domain/issue"
	"issuedesk/internal/infrastructure/persistence/mappers"
	"issuedesk/internal/infrastructure/persistence/models"
	"issuedesk/internal/shared/biztime"
	"issuedesk/internal/shared/db"
	"issuedesk/internal/shared/logger"
)

// issueOrderBy maps each sort key to a fixed ORDER BY clause. User input
// never reaches the SQL text.
var issueOrderBy = map[issue.SortKey]string{
	issue.SortByCreatedAt: "created_at DESC, id DESC",
	issue.SortByPriority:  "priority ASC, created_at DESC, id DESC",
	issue.SortBySeverity:  "severity DESC, created_at DESC, id DESC",
}

// immutableIssueColumns are never rewritten by Update.
var immutableIssueColumns = []string{"id", "tracking_code", "created_at"}

// likeEscaper neutralises LIKE wildcards in user search input. '!' is used
// instead of a backslash because the two dialects disagree on how a
// backslash literal is quoted.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

const searchClause = "title LIKE ? ESCAPE '!' OR description LIKE ? ESCAPE '!' OR " +
	"reporter_name LIKE ? ESCAPE '!' OR tracking_code LIKE ? ESCAPE '!'"

type IssueRepository struct {
	db     *gorm.DB
	mapper mappers.IssueMapper
	logger logger.Interface
}

func NewIssueRepository(gormDB *gorm.DB, log logger.Interface) *IssueRepository {
	return &IssueRepository{
		db:     gormDB,
		mapper: mappers.NewIssueMapper(),
		logger: log,
	}
}

// readTx returns the handle for a read. Inside a transaction the rows are
// locked until commit so that validate-then-write sequences serialize.
// SQLite drops the locking clause and relies on its database-level lock.
func (r *IssueRepository) readTx(ctx context.Context) *gorm.DB {
	tx := db.GetTxFromContext(ctx, r.db)
	if db.InTransaction(ctx) {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func (r *IssueRepository) Create(ctx context.Context, i *issue.Issue) error {
	model := r.mapper.ToModel(i)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create issue", "tracking_code", i.TrackingCode(), "error", err)
		return fmt.Errorf("failed to create issue: %w", err)
	}

	return i.SetID(model.ID)
}

// Update writes every mutable column, zero values included, so that cleared
// fields are persisted.
func (r *IssueRepository) Update(ctx context.Context, i *issue.Issue) error {
	model := r.mapper.ToModel(i)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.IssueModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit(immutableIssueColumns...).
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update issue", "issue_id", i.ID(), "error", result.Error)
		return fmt.Errorf("failed to update issue: %w", result.Error)
	}

	// Note: RowsAffected may be 0 when updated values are identical to existing values.

	return nil
}

func (r *IssueRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.IssueModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete issue: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return issue.ErrIssueNotFound
	}
	return nil
}

func (r *IssueRepository) GetByID(ctx context.Context, id uint) (*issue.Issue, error) {
	var model models.IssueModel
	tx := r.readTx(ctx)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, issue.ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *IssueRepository) GetByTrackingCode(ctx context.Context, code string) (*issue.Issue, error) {
	var model models.IssueModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("tracking_code = ?", code).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, issue.ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to get issue by tracking code: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// GetByIDs returns the issues that exist among ids, ordered by id. Missing
// ids are silently skipped.
func (r *IssueRepository) GetByIDs(ctx context.Context, ids []uint) ([]*issue.Issue, error) {
	if len(ids) == 0 {
		return []*issue.Issue{}, nil
	}

	var issueModels []models.IssueModel
	tx := r.readTx(ctx)
	if err := tx.Where("id IN ?", ids).Order("id ASC").Find(&issueModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get issues by ids: %w", err)
	}

	return r.mapper.ToDomainList(issueModels)
}

func (r *IssueRepository) List(ctx context.Context, filter issue.Filter) ([]*issue.Issue, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.IssueModel{})

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		query = query.Where("status IN ?", statuses)
	}
	if len(filter.ModelIDs) > 0 {
		query = query.Where("model_id IN ?", filter.ModelIDs)
	}
	if filter.Search != "" {
		like := "%" + likeEscaper.Replace(filter.Search) + "%"
		query = query.Where(searchClause, like, like, like, like)
	}
	if filter.SubmitFrom != nil {
		query = query.Where("submit_date >= ?", biztime.StartOfDayUTC(*filter.SubmitFrom))
	}
	if filter.SubmitTo != nil {
		query = query.Where("submit_date <= ?", biztime.EndOfDayUTC(*filter.SubmitTo))
	}
	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}
	if filter.ParentID != nil {
		query = query.Where("parent_id = ?", *filter.ParentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count issues: %w", err)
	}

	order, ok := issueOrderBy[filter.SortBy]
	if !ok {
		order = issueOrderBy[issue.SortByCreatedAt]
	}
	query = query.Order(order)

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	var issueModels []models.IssueModel
	if err := query.Find(&issueModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list issues: %w", err)
	}

	issues, err := r.mapper.ToDomainList(issueModels)
	if err != nil {
		return nil, 0, err
	}

	return issues, total, nil
}

func (r *IssueRepository) ListChildren(ctx context.Context, parentID uint) ([]*issue.Issue, error) {
	var issueModels []models.IssueModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("parent_id = ?", parentID).Order("id ASC").Find(&issueModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list child issues: %w", err)
	}

	return r.mapper.ToDomainList(issueModels)
}

func (r *IssueRepository) ParentsAmong(ctx context.Context, ids []uint) (map[uint]bool, error) {
	parents := make(map[uint]bool)
	if len(ids) == 0 {
		return parents, nil
	}

	// duplicates collapse in the map below
	var parentIDs []uint
	tx := r.readTx(ctx)
	if err := tx.Model(&models.IssueModel{}).
		Where("parent_id IN ?", ids).
		Pluck("parent_id", &parentIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to query parent issues: %w", err)
	}

	for _, id := range parentIDs {
		parents[id] = true
	}
	return parents, nil
}

func (r *IssueRepository) DetachChildren(ctx context.Context, parentID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.IssueModel{}).
		Where("parent_id = ?", parentID).
		Updates(map[string]any{
			"parent_id":  nil,
			"updated_at": biztime.NowUTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to detach child issues: %w", result.Error)
	}
	return result.RowsAffected, nil
}
