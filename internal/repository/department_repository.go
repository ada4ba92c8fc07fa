package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/facility-complaints/internal/domain"
	apperrors "github.com/spec-kit/facility-complaints/pkg/util/errorutil"
)

// DepartmentFilter captures department listing parameters.
type DepartmentFilter struct {
	Name       *string
	Status     *domain.RecordStatus
	SearchTerm *string
	Limit      int
	Offset     int
}

var departmentSearchColumns = []string{"department_code", "department_name"}

// Matches evaluates the filter against a single department.
func (f DepartmentFilter) Matches(dept *domain.Department) bool {
	if f.Name != nil && dept.Name != *f.Name {
		return false
	}
	if f.Status != nil && dept.Status != *f.Status {
		return false
	}
	if f.SearchTerm != nil && !matchesSearch(*f.SearchTerm, []string{dept.Code, dept.Name}) {
		return false
	}
	return true
}

func (f DepartmentFilter) whereClause() (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Name != nil {
		clauses = append(clauses, "department_name="+next(*f.Name))
	}
	if f.Status != nil {
		clauses = append(clauses, "status="+next(string(*f.Status)))
	}
	if f.SearchTerm != nil {
		clauses = append(clauses, searchClause(*f.SearchTerm, departmentSearchColumns, next)...)
	}
	return strings.Join(clauses, " AND "), args
}

func errDepartmentInUse(code string) error {
	return apperrors.NewConflict("department is referenced by issue categories", map[string]any{"department_code": code})
}

// DepartmentRepository manages department persistence.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	Update(ctx context.Context, dept *domain.Department) error
	Delete(ctx context.Context, code string) error
	GetByCode(ctx context.Context, code string) (*domain.Department, error)
	List(ctx context.Context, filter DepartmentFilter) ([]domain.Department, error)
	Count(ctx context.Context, filter DepartmentFilter) (int, error)
}

type departmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository builds the repository.
func NewDepartmentRepository(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepository{pool: pool}
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	const query = `
        INSERT INTO departments (department_code, department_name, status)
        VALUES ($1,$2,$3)`
	_, err := r.pool.Exec(ctx, query, dept.Code, dept.Name, dept.Status)
	return err
}

func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	const query = `
        UPDATE departments SET department_name=$1, status=$2
        WHERE department_code=$3`
	cmd, err := r.pool.Exec(ctx, query, dept.Name, dept.Status, dept.Code)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *departmentRepository) Delete(ctx context.Context, code string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM departments WHERE department_code=$1`, code)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return errDepartmentInUse(code)
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *departmentRepository) GetByCode(ctx context.Context, code string) (*domain.Department, error) {
	const query = `
        SELECT department_code, department_name, status
        FROM departments WHERE department_code=$1`
	var dept domain.Department
	if err := r.pool.QueryRow(ctx, query, code).Scan(&dept.Code, &dept.Name, &dept.Status); err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context, filter DepartmentFilter) ([]domain.Department, error) {
	where, args := filter.whereClause()
	query := fmt.Sprintf(`SELECT department_code, department_name, status FROM departments WHERE %s ORDER BY department_code%s`,
		where, limitClause(filter.Limit, filter.Offset))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Department{}
	for rows.Next() {
		var dept domain.Department
		if err := rows.Scan(&dept.Code, &dept.Name, &dept.Status); err != nil {
			return nil, err
		}
		result = append(result, dept)
	}
	return result, rows.Err()
}

func (r *departmentRepository) Count(ctx context.Context, filter DepartmentFilter) (int, error) {
	where, args := filter.whereClause()
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM departments WHERE `+where, args...).Scan(&total)
	return total, err
}
