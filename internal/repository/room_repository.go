package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/facility-complaints/internal/domain"
)

// RoomFilter captures room listing parameters.
type RoomFilter struct {
	Status     *domain.RoomStatus
	Ward       *string
	Speciality *string
	RoomType   *string
	SearchTerm *string
	Limit      int
	Offset     int
}

var roomSearchColumns = []string{"room_no", "bed_no", "block"}

// Matches evaluates the filter against a single room.
func (f RoomFilter) Matches(room *domain.Room) bool {
	if f.Status != nil && room.Status != *f.Status {
		return false
	}
	if f.Ward != nil && room.Ward != *f.Ward {
		return false
	}
	if f.Speciality != nil && room.Speciality != *f.Speciality {
		return false
	}
	if f.RoomType != nil && room.RoomType != *f.RoomType {
		return false
	}
	if f.SearchTerm != nil && !matchesSearch(*f.SearchTerm, []string{room.RoomNo, room.BedNo, room.Block}) {
		return false
	}
	return true
}

func (f RoomFilter) whereClause() (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Status != nil {
		clauses = append(clauses, "status="+next(string(*f.Status)))
	}
	if f.Ward != nil {
		clauses = append(clauses, "ward="+next(*f.Ward))
	}
	if f.Speciality != nil {
		clauses = append(clauses, "speciality="+next(*f.Speciality))
	}
	if f.RoomType != nil {
		clauses = append(clauses, "room_type="+next(*f.RoomType))
	}
	if f.SearchTerm != nil {
		clauses = append(clauses, searchClause(*f.SearchTerm, roomSearchColumns, next)...)
	}
	return strings.Join(clauses, " AND "), args
}

// RoomRepository manages room persistence.
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	Update(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, filter RoomFilter) ([]domain.Room, error)
	Count(ctx context.Context, filter RoomFilter) (int, error)
}

type roomRepository struct {
	pool *pgxpool.Pool
}

// NewRoomRepository builds the repository.
func NewRoomRepository(pool *pgxpool.Pool) RoomRepository {
	return &roomRepository{pool: pool}
}

const roomColumns = `id, room_no, bed_no, block, ward, speciality, room_type, status`

func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	const query = `
        INSERT INTO rooms (room_no, bed_no, block, ward, speciality, room_type, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		room.RoomNo,
		room.BedNo,
		room.Block,
		room.Ward,
		room.Speciality,
		room.RoomType,
		room.Status,
	).Scan(&room.ID)
}

func (r *roomRepository) Update(ctx context.Context, room *domain.Room) error {
	const query = `
        UPDATE rooms SET room_no=$1, bed_no=$2, block=$3, ward=$4, speciality=$5, room_type=$6, status=$7
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		room.RoomNo,
		room.BedNo,
		room.Block,
		room.Ward,
		room.Speciality,
		room.RoomType,
		room.Status,
		room.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *roomRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM rooms WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *roomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	if err := r.pool.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id=$1`, id).Scan(
		&room.ID,
		&room.RoomNo,
		&room.BedNo,
		&room.Block,
		&room.Ward,
		&room.Speciality,
		&room.RoomType,
		&room.Status,
	); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) List(ctx context.Context, filter RoomFilter) ([]domain.Room, error) {
	where, args := filter.whereClause()
	query := fmt.Sprintf(`SELECT %s FROM rooms WHERE %s ORDER BY id%s`,
		roomColumns, where, limitClause(filter.Limit, filter.Offset))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Room{}
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.RoomNo, &room.BedNo, &room.Block, &room.Ward,
			&room.Speciality, &room.RoomType, &room.Status); err != nil {
			return nil, err
		}
		result = append(result, room)
	}
	return result, rows.Err()
}

func (r *roomRepository) Count(ctx context.Context, filter RoomFilter) (int, error) {
	where, args := filter.whereClause()
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM rooms WHERE `+where, args...).Scan(&total)
	return total, err
}
