package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/facility-complaints/internal/domain"
)

// IssueCategoryFilter captures issue category listing parameters.
type IssueCategoryFilter struct {
	Code       *string
	Department *string
	Name       *string
	Status     *domain.RecordStatus
	SearchTerm *string
	Limit      int
	Offset     int
}

var issueCategorySearchColumns = []string{"ic.issue_category_code", "d.department_name", "ic.issue_category_name"}

// Matches evaluates the filter against a single category.
func (f IssueCategoryFilter) Matches(cat *domain.IssueCategory) bool {
	if f.Code != nil && cat.Code != *f.Code {
		return false
	}
	if f.Department != nil && cat.DepartmentCode != *f.Department {
		return false
	}
	if f.Name != nil && cat.Name != *f.Name {
		return false
	}
	if f.Status != nil && cat.Status != *f.Status {
		return false
	}
	if f.SearchTerm != nil && !matchesSearch(*f.SearchTerm, []string{cat.Code, cat.DepartmentName, cat.Name}) {
		return false
	}
	return true
}

func (f IssueCategoryFilter) whereClause() (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Code != nil {
		clauses = append(clauses, "ic.issue_category_code="+next(*f.Code))
	}
	if f.Department != nil {
		clauses = append(clauses, "ic.department_code="+next(*f.Department))
	}
	if f.Name != nil {
		clauses = append(clauses, "ic.issue_category_name="+next(*f.Name))
	}
	if f.Status != nil {
		clauses = append(clauses, "ic.status="+next(string(*f.Status)))
	}
	if f.SearchTerm != nil {
		clauses = append(clauses, searchClause(*f.SearchTerm, issueCategorySearchColumns, next)...)
	}
	return strings.Join(clauses, " AND "), args
}

// IssueCategoryRepository manages issue category persistence.
type IssueCategoryRepository interface {
	Create(ctx context.Context, cat *domain.IssueCategory) error
	Update(ctx context.Context, cat *domain.IssueCategory) error
	Delete(ctx context.Context, code string) error
	GetByCode(ctx context.Context, code string) (*domain.IssueCategory, error)
	List(ctx context.Context, filter IssueCategoryFilter) ([]domain.IssueCategory, error)
	Count(ctx context.Context, filter IssueCategoryFilter) (int, error)
}

type issueCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewIssueCategoryRepository builds the repository.
func NewIssueCategoryRepository(pool *pgxpool.Pool) IssueCategoryRepository {
	return &issueCategoryRepository{pool: pool}
}

const issueCategorySelect = `
        SELECT ic.issue_category_code, ic.issue_category_name, ic.department_code, d.department_name, ic.status
        FROM issue_categories ic
        JOIN departments d ON d.department_code = ic.department_code`

func (r *issueCategoryRepository) Create(ctx context.Context, cat *domain.IssueCategory) error {
	const query = `
        INSERT INTO issue_categories (issue_category_code, issue_category_name, department_code, status)
        VALUES ($1,$2,$3,$4)`
	_, err := r.pool.Exec(ctx, query, cat.Code, cat.Name, cat.DepartmentCode, cat.Status)
	return err
}

func (r *issueCategoryRepository) Update(ctx context.Context, cat *domain.IssueCategory) error {
	const query = `
        UPDATE issue_categories SET issue_category_name=$1, department_code=$2, status=$3
        WHERE issue_category_code=$4`
	cmd, err := r.pool.Exec(ctx, query, cat.Name, cat.DepartmentCode, cat.Status, cat.Code)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *issueCategoryRepository) Delete(ctx context.Context, code string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM issue_categories WHERE issue_category_code=$1`, code)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *issueCategoryRepository) GetByCode(ctx context.Context, code string) (*domain.IssueCategory, error) {
	var cat domain.IssueCategory
	if err := r.pool.QueryRow(ctx, issueCategorySelect+` WHERE ic.issue_category_code=$1`, code).Scan(
		&cat.Code, &cat.Name, &cat.DepartmentCode, &cat.DepartmentName, &cat.Status,
	); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *issueCategoryRepository) List(ctx context.Context, filter IssueCategoryFilter) ([]domain.IssueCategory, error) {
	where, args := filter.whereClause()
	query := fmt.Sprintf(`%s WHERE %s ORDER BY ic.issue_category_code%s`,
		issueCategorySelect, where, limitClause(filter.Limit, filter.Offset))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.IssueCategory{}
	for rows.Next() {
		var cat domain.IssueCategory
		if err := rows.Scan(&cat.Code, &cat.Name, &cat.DepartmentCode, &cat.DepartmentName, &cat.Status); err != nil {
			return nil, err
		}
		result = append(result, cat)
	}
	return result, rows.Err()
}

func (r *issueCategoryRepository) Count(ctx context.Context, filter IssueCategoryFilter) (int, error) {
	where, args := filter.whereClause()
	query := `SELECT COUNT(*) FROM issue_categories ic JOIN departments d ON d.department_code = ic.department_code WHERE ` + where
	var total int
	err := r.pool.QueryRow(ctx, query, args...).Scan(&total)
	return total, err
}
