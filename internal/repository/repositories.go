package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories groups the stores used by the services.
type Repositories struct {
	Rooms           RoomRepository
	Departments     DepartmentRepository
	IssueCategories IssueCategoryRepository
	Complaints      ComplaintRepository
	Users           UserRepository
}

// NewPostgresRepositories builds pgx-backed repositories over pool.
func NewPostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Rooms:           NewRoomRepository(pool),
		Departments:     NewDepartmentRepository(pool),
		IssueCategories: NewIssueCategoryRepository(pool),
		Complaints:      NewComplaintRepository(pool),
		Users:           NewUserRepository(pool),
	}
}

// Repositories exposes every in-memory repository.
func (s *MemoryStore) Repositories() Repositories {
	return Repositories{
		Rooms:           s.Rooms(),
		Departments:     s.Departments(),
		IssueCategories: s.IssueCategories(),
		Complaints:      s.Complaints(),
		Users:           s.Users(),
	}
}
