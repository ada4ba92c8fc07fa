package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/facility-complaints/internal/domain"
	"github.com/spec-kit/facility-complaints/internal/report"
	apperrors "github.com/spec-kit/facility-complaints/pkg/util/errorutil"
)

// MemoryStore keeps every entity in process memory. It backs the service when no
// POSTGRES_DSN is configured and mirrors the Postgres repositories' semantics: missing rows
// surface as pgx.ErrNoRows, duplicate keys as conflicts.
type MemoryStore struct {
	mu          sync.RWMutex
	nextRoomID  int64
	rooms       map[int64]domain.Room
	departments map[string]domain.Department
	categories  map[string]domain.IssueCategory
	complaints  map[string]domain.Complaint
	users       map[string]domain.User
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms:       make(map[int64]domain.Room),
		departments: make(map[string]domain.Department),
		categories:  make(map[string]domain.IssueCategory),
		complaints:  make(map[string]domain.Complaint),
		users:       make(map[string]domain.User),
	}
}

// Rooms exposes the store as a RoomRepository.
func (s *MemoryStore) Rooms() RoomRepository { return memoryRooms{s} }

// Departments exposes the store as a DepartmentRepository.
func (s *MemoryStore) Departments() DepartmentRepository { return memoryDepartments{s} }

// IssueCategories exposes the store as an IssueCategoryRepository.
func (s *MemoryStore) IssueCategories() IssueCategoryRepository { return memoryCategories{s} }

// Complaints exposes the store as a ComplaintRepository.
func (s *MemoryStore) Complaints() ComplaintRepository { return memoryComplaints{s} }

// Users exposes the store as a UserRepository.
func (s *MemoryStore) Users() UserRepository { return memoryUsers{s} }

func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// rooms

type memoryRooms struct{ s *MemoryStore }

func (m memoryRooms) Create(_ context.Context, room *domain.Room) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.nextRoomID++
	room.ID = m.s.nextRoomID
	m.s.rooms[room.ID] = *room
	return nil
}

func (m memoryRooms) Update(_ context.Context, room *domain.Room) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.rooms[room.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.s.rooms[room.ID] = *room
	return nil
}

func (m memoryRooms) Delete(_ context.Context, id int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.rooms[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.s.rooms, id)
	return nil
}

func (m memoryRooms) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	room, ok := m.s.rooms[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &room, nil
}

func (m memoryRooms) matching(filter RoomFilter) []domain.Room {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := []domain.Room{}
	for _, room := range m.s.rooms {
		if filter.Matches(&room) {
			out = append(out, room)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m memoryRooms) List(_ context.Context, filter RoomFilter) ([]domain.Room, error) {
	return paginate(m.matching(filter), filter.Limit, filter.Offset), nil
}

func (m memoryRooms) Count(_ context.Context, filter RoomFilter) (int, error) {
	return len(m.matching(filter)), nil
}

// departments

type memoryDepartments struct{ s *MemoryStore }

func (m memoryDepartments) Create(_ context.Context, dept *domain.Department) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, exists := m.s.departments[dept.Code]; exists {
		return apperrors.NewConflict("record already exists", map[string]any{"department_code": dept.Code})
	}
	m.s.departments[dept.Code] = *dept
	return nil
}

func (m memoryDepartments) Update(_ context.Context, dept *domain.Department) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.departments[dept.Code]; !ok {
		return pgx.ErrNoRows
	}
	m.s.departments[dept.Code] = *dept
	for code, cat := range m.s.categories {
		if cat.DepartmentCode == dept.Code {
			cat.DepartmentName = dept.Name
			m.s.categories[code] = cat
		}
	}
	return nil
}

func (m memoryDepartments) Delete(_ context.Context, code string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.departments[code]; !ok {
		return pgx.ErrNoRows
	}
	for _, cat := range m.s.categories {
		if cat.DepartmentCode == code {
			return errDepartmentInUse(code)
		}
	}
	delete(m.s.departments, code)
	return nil
}

func (m memoryDepartments) GetByCode(_ context.Context, code string) (*domain.Department, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	dept, ok := m.s.departments[code]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &dept, nil
}

func (m memoryDepartments) matching(filter DepartmentFilter) []domain.Department {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := []domain.Department{}
	for _, dept := range m.s.departments {
		if filter.Matches(&dept) {
			out = append(out, dept)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (m memoryDepartments) List(_ context.Context, filter DepartmentFilter) ([]domain.Department, error) {
	return paginate(m.matching(filter), filter.Limit, filter.Offset), nil
}

func (m memoryDepartments) Count(_ context.Context, filter DepartmentFilter) (int, error) {
	return len(m.matching(filter)), nil
}

// issue categories

type memoryCategories struct{ s *MemoryStore }

func (m memoryCategories) resolveDepartment(cat *domain.IssueCategory) error {
	dept, ok := m.s.departments[cat.DepartmentCode]
	if !ok {
		return apperrors.NewValidationError("referenced record does not exist", map[string]any{"department": cat.DepartmentCode})
	}
	cat.DepartmentName = dept.Name
	return nil
}

func (m memoryCategories) Create(_ context.Context, cat *domain.IssueCategory) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, exists := m.s.categories[cat.Code]; exists {
		return apperrors.NewConflict("record already exists", map[string]any{"issue_category_code": cat.Code})
	}
	if err := m.resolveDepartment(cat); err != nil {
		return err
	}
	m.s.categories[cat.Code] = *cat
	return nil
}

func (m memoryCategories) Update(_ context.Context, cat *domain.IssueCategory) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.categories[cat.Code]; !ok {
		return pgx.ErrNoRows
	}
	if err := m.resolveDepartment(cat); err != nil {
		return err
	}
	m.s.categories[cat.Code] = *cat
	return nil
}

func (m memoryCategories) Delete(_ context.Context, code string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.categories[code]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.s.categories, code)
	return nil
}

func (m memoryCategories) GetByCode(_ context.Context, code string) (*domain.IssueCategory, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	cat, ok := m.s.categories[code]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &cat, nil
}

func (m memoryCategories) matching(filter IssueCategoryFilter) []domain.IssueCategory {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := []domain.IssueCategory{}
	for _, cat := range m.s.categories {
		if filter.Matches(&cat) {
			out = append(out, cat)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (m memoryCategories) List(_ context.Context, filter IssueCategoryFilter) ([]domain.IssueCategory, error) {
	return paginate(m.matching(filter), filter.Limit, filter.Offset), nil
}

func (m memoryCategories) Count(_ context.Context, filter IssueCategoryFilter) (int, error) {
	return len(m.matching(filter)), nil
}

// complaints

type memoryComplaints struct{ s *MemoryStore }

func (m memoryComplaints) Create(_ context.Context, c *domain.Complaint) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, exists := m.s.complaints[c.TicketID]; exists {
		return apperrors.NewConflict("record already exists", map[string]any{"ticket_id": c.TicketID})
	}
	m.s.complaints[c.TicketID] = *c
	return nil
}

func (m memoryComplaints) Update(_ context.Context, c *domain.Complaint) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.complaints[c.TicketID]; !ok {
		return pgx.ErrNoRows
	}
	m.s.complaints[c.TicketID] = *c
	return nil
}

func (m memoryComplaints) Delete(_ context.Context, ticketID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.complaints[ticketID]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.s.complaints, ticketID)
	return nil
}

func (m memoryComplaints) GetByTicketID(_ context.Context, ticketID string) (*domain.Complaint, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	c, ok := m.s.complaints[ticketID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &c, nil
}

func (m memoryComplaints) matching(filter ComplaintFilter) []domain.Complaint {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := []domain.Complaint{}
	for _, c := range m.s.complaints {
		if filter.Matches(&c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return filter.less(&out[i], &out[j]) })
	return out
}

func (m memoryComplaints) List(_ context.Context, filter ComplaintFilter) ([]domain.Complaint, error) {
	return paginate(m.matching(filter), filter.Limit, filter.Offset), nil
}

func (m memoryComplaints) Count(_ context.Context, filter ComplaintFilter) (int, error) {
	return len(m.matching(filter.Unpaged())), nil
}

func (m memoryComplaints) Tally(_ context.Context, filter ComplaintFilter) (report.StatusCounts, error) {
	return report.Tally(m.matching(filter.Unpaged())), nil
}

func (m memoryComplaints) GroupCounts(_ context.Context, filter ComplaintFilter) ([]report.GroupCounts, error) {
	return report.GroupByDepartmentPriority(m.matching(filter.Unpaged())), nil
}

func (m memoryComplaints) AverageTurnaround(_ context.Context, filter ComplaintFilter) (*time.Duration, error) {
	return report.MeanTurnaround(m.matching(filter.Unpaged())), nil
}

// users

type memoryUsers struct{ s *MemoryStore }

func (m memoryUsers) Create(_ context.Context, user *domain.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.users {
		if existing.Username == user.Username {
			return apperrors.NewConflict("record already exists", map[string]any{"username": user.Username})
		}
	}
	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt, user.UpdatedAt = now, now
	m.s.users[user.ID] = *user
	return nil
}

func (m memoryUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	user, ok := m.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (m memoryUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, user := range m.s.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}
