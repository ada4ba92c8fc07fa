package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/facility-complaints/internal/domain"
	"github.com/spec-kit/facility-complaints/internal/report"
)

// ComplaintRepository encapsulates complaint persistence and the aggregate queries the
// reports run.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	Update(ctx context.Context, complaint *domain.Complaint) error
	Delete(ctx context.Context, ticketID string) error
	GetByTicketID(ctx context.Context, ticketID string) (*domain.Complaint, error)
	List(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error)
	Count(ctx context.Context, filter ComplaintFilter) (int, error)
	Tally(ctx context.Context, filter ComplaintFilter) (report.StatusCounts, error)
	GroupCounts(ctx context.Context, filter ComplaintFilter) ([]report.GroupCounts, error)
	AverageTurnaround(ctx context.Context, filter ComplaintFilter) (*time.Duration, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `ticket_id, room_number, bed_number, block, ward, issue_type, assigned_department,
               priority, status, description, submitted_at, submitted_by, resolved_at, resolved_by, remarks`

func (r *complaintRepository) Create(ctx context.Context, c *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (ticket_id, room_number, bed_number, block, ward, issue_type, assigned_department,
            priority, status, description, submitted_at, submitted_by, resolved_at, resolved_by, remarks)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`
	_, err := r.pool.Exec(ctx, query,
		c.TicketID,
		c.RoomNumber,
		c.BedNumber,
		c.Block,
		c.Ward,
		c.IssueType,
		c.AssignedDepartment,
		c.Priority,
		c.Status,
		c.Description,
		c.SubmittedAt,
		c.SubmittedBy,
		c.ResolvedAt,
		c.ResolvedBy,
		c.Remarks,
	)
	return err
}

func (r *complaintRepository) Update(ctx context.Context, c *domain.Complaint) error {
	const query = `
        UPDATE complaints SET room_number=$1, bed_number=$2, block=$3, ward=$4, issue_type=$5,
            assigned_department=$6, priority=$7, status=$8, description=$9, resolved_at=$10,
            resolved_by=$11, remarks=$12
        WHERE ticket_id=$13`
	cmd, err := r.pool.Exec(ctx, query,
		c.RoomNumber,
		c.BedNumber,
		c.Block,
		c.Ward,
		c.IssueType,
		c.AssignedDepartment,
		c.Priority,
		c.Status,
		c.Description,
		c.ResolvedAt,
		c.ResolvedBy,
		c.Remarks,
		c.TicketID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) Delete(ctx context.Context, ticketID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM complaints WHERE ticket_id=$1`, ticketID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) GetByTicketID(ctx context.Context, ticketID string) (*domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE ticket_id=$1`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list, err := scanComplaints(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &list[0], nil
}

func (r *complaintRepository) List(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error) {
	where, args := filter.whereClause()
	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE %s ORDER BY %s%s`,
		complaintColumns, where, filter.orderClause(), limitClause(filter.Limit, filter.Offset))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *complaintRepository) Count(ctx context.Context, filter ComplaintFilter) (int, error) {
	where, args := filter.whereClause()
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM complaints WHERE `+where, args...).Scan(&total)
	return total, err
}

func (r *complaintRepository) Tally(ctx context.Context, filter ComplaintFilter) (report.StatusCounts, error) {
	query, args := tallyQuery(filter)
	var counts report.StatusCounts
	err := r.pool.QueryRow(ctx, query, args...).Scan(&counts.Total, &counts.Open, &counts.Resolved)
	return counts, err
}

func (r *complaintRepository) GroupCounts(ctx context.Context, filter ComplaintFilter) ([]report.GroupCounts, error) {
	query, args := groupCountsQuery(filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []report.GroupCounts{}
	for rows.Next() {
		var g report.GroupCounts
		if err := rows.Scan(&g.Department, &g.Priority, &g.Total, &g.Open, &g.Resolved); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *complaintRepository) AverageTurnaround(ctx context.Context, filter ComplaintFilter) (*time.Duration, error) {
	query, args := averageTurnaroundQuery(filter)
	var seconds *float64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&seconds); err != nil {
		return nil, err
	}
	return report.SecondsToDuration(seconds), nil
}

const statusCountColumns = `COUNT(*), COUNT(*) FILTER (WHERE status='open'), COUNT(*) FILTER (WHERE status='resolved')`

func tallyQuery(filter ComplaintFilter) (string, []any) {
	where, args := filter.whereClause()
	return `SELECT ` + statusCountColumns + ` FROM complaints WHERE ` + where, args
}

// groupCountsQuery orders groups bytewise so that SQL and in-memory results agree.
func groupCountsQuery(filter ComplaintFilter) (string, []any) {
	where, args := filter.whereClause()
	return `SELECT assigned_department, priority, ` + statusCountColumns +
		` FROM complaints WHERE ` + where +
		` GROUP BY assigned_department, priority` +
		` ORDER BY assigned_department COLLATE "C", priority COLLATE "C"`, args
}

// averageTurnaroundQuery yields NULL when no filtered complaint is resolved.
func averageTurnaroundQuery(filter ComplaintFilter) (string, []any) {
	where, args := filter.whereClause()
	return `SELECT EXTRACT(EPOCH FROM AVG(resolved_at - submitted_at))::float8 FROM complaints WHERE ` +
		where + ` AND status='resolved' AND resolved_at IS NOT NULL`, args
}

func scanComplaints(rows pgx.Rows) ([]domain.Complaint, error) {
	result := []domain.Complaint{}
	for rows.Next() {
		var c domain.Complaint
		if err := rows.Scan(
			&c.TicketID,
			&c.RoomNumber,
			&c.BedNumber,
			&c.Block,
			&c.Ward,
			&c.IssueType,
			&c.AssignedDepartment,
			&c.Priority,
			&c.Status,
			&c.Description,
			&c.SubmittedAt,
			&c.SubmittedBy,
			&c.ResolvedAt,
			&c.ResolvedBy,
			&c.Remarks,
		); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
