package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/fmzb/hub-api/internal/models"
	"github.com/fmzb/hub-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// fakeUserRepo is an in-memory UserRepository used across the service tests.
type fakeUserRepo struct {
	users     map[string]models.UserProfile
	statusErr error
	roleErr   error
	recentErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]models.UserProfile)}
}

func (f *fakeUserRepo) add(user models.UserProfile) {
	f.users[user.Email] = user
}

func (f *fakeUserRepo) CountByStatus(ctx context.Context) (repository.StatusCounts, error) {
	if f.statusErr != nil {
		return repository.StatusCounts{}, f.statusErr
	}
	counts := repository.StatusCounts{}
	for _, user := range f.users {
		counts.Total++
		if user.Status == models.UserStatusActive {
			counts.Active++
		} else {
			counts.Disabled++
		}
	}
	return counts, nil
}

func (f *fakeUserRepo) CountByRole(ctx context.Context) ([]repository.RoleCount, error) {
	if f.roleErr != nil {
		return nil, f.roleErr
	}
	byRole := map[string]int64{}
	for _, user := range f.users {
		byRole[user.UserType]++
	}
	roles := make([]repository.RoleCount, 0, len(byRole))
	for _, role := range []string{models.UserTypeCustomer, models.UserTypeMerchant} {
		if count, ok := byRole[role]; ok {
			roles = append(roles, repository.RoleCount{Role: role, Count: count})
		}
	}
	return roles, nil
}

func (f *fakeUserRepo) ListRecent(ctx context.Context, limit int) ([]models.UserProfile, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	users := f.sortedByCreation()
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (f *fakeUserRepo) List(ctx context.Context, filter repository.UserFilter) ([]models.UserProfile, int64, error) {
	matched := make([]models.UserProfile, 0, len(f.users))
	for _, user := range f.sortedByCreation() {
		if filter.UserType != "" && user.UserType != filter.UserType {
			continue
		}
		if filter.Status != "" && user.Status != filter.Status {
			continue
		}
		matched = append(matched, user)
	}
	return matched, int64(len(matched)), nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (models.UserProfile, error) {
	user, ok := f.users[email]
	if !ok {
		return models.UserProfile{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) UpdateStatus(ctx context.Context, email, status string) error {
	user, ok := f.users[email]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Status = status
	f.users[email] = user
	return nil
}

func (f *fakeUserRepo) DeleteByEmail(ctx context.Context, email string) error {
	if _, ok := f.users[email]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.users, email)
	return nil
}

func (f *fakeUserRepo) UpsertBatch(ctx context.Context, users []models.UserProfile) (int64, error) {
	for _, user := range users {
		f.users[user.Email] = user
	}
	return int64(len(users)), nil
}

func (f *fakeUserRepo) sortedByCreation() []models.UserProfile {
	users := make([]models.UserProfile, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, user)
	}
	for i := 0; i < len(users); i++ {
		for j := i + 1; j < len(users); j++ {
			if users[j].TimeOfCreation.After(users[i].TimeOfCreation) {
				users[i], users[j] = users[j], users[i]
			}
		}
	}
	return users
}

// fakeActivityRepo is an in-memory ActivityLogRepository.
type fakeActivityRepo struct {
	entries   []models.UserActivityLog
	appendErr error
	listErr   error
}

func (f *fakeActivityRepo) Append(ctx context.Context, entry *models.UserActivityLog) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	entry.ID = uint(len(f.entries) + 1)
	if entry.ActivityDate.IsZero() {
		entry.ActivityDate = time.Now()
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeActivityRepo) List(ctx context.Context, filter repository.ActivityLogFilter) ([]models.UserActivityLog, int64, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	matched := make([]models.UserActivityLog, 0, len(f.entries))
	for _, entry := range f.entries {
		if filter.Email != "" && entry.Email != filter.Email {
			continue
		}
		if filter.ActivityType != "" && entry.ActivityType != filter.ActivityType {
			continue
		}
		matched = append(matched, entry)
	}
	return matched, int64(len(matched)), nil
}

func seedFakeUsers(repo *fakeUserRepo, customers, merchants int) {
	now := time.Now()
	for i := 0; i < customers; i++ {
		repo.add(models.UserProfile{
			Email:          fmt.Sprintf("customer%d@example.com", i),
			UserType:       models.UserTypeCustomer,
			Status:         models.UserStatusActive,
			TimeOfCreation: now.Add(time.Duration(i) * time.Minute),
		})
	}
	for i := 0; i < merchants; i++ {
		repo.add(models.UserProfile{
			Email:          fmt.Sprintf("merchant%d@example.com", i),
			UserType:       models.UserTypeMerchant,
			Status:         models.UserStatusActive,
			TimeOfCreation: now.Add(time.Duration(customers+i) * time.Minute),
		})
	}
}

var (
	_ repository.UserRepository        = (*fakeUserRepo)(nil)
	_ repository.ActivityLogRepository = (*fakeActivityRepo)(nil)
)
