package services

import (
	"testing"

	"github.com/propdesk/propdesk/internal/access"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMaintenanceService(db *gorm.DB) *MaintenanceService {
	return NewMaintenanceService(db, access.NewGate(db))
}

func TestCreateMaintenanceDefaultsAndValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newMaintenanceService(db)

	user := createUser(t, db, "u@example.com")

	task, err := svc.Create(user.ID, &dto.CreateMaintenanceRequest{Title: "Replace filter"})
	require.NoError(t, err)
	assert.Equal(t, "medium", task.Priority)
	assert.Equal(t, "pending", task.Status)
	assert.Nil(t, task.PropertyID)

	_, err = svc.Create(user.ID, &dto.CreateMaintenanceRequest{Title: "x", Priority: "urgent"})
	assert.ErrorIs(t, err, ErrInvalidPriority)

	_, err = svc.Create(user.ID, &dto.CreateMaintenanceRequest{Title: "x", Status: "done"})
	assert.ErrorIs(t, err, ErrInvalidMaintenanceStatus)

	_, err = svc.Create(user.ID, &dto.CreateMaintenanceRequest{})
	assert.Error(t, err)
}

func TestCompletingMaintenanceStampsTimestamp(t *testing.T) {
	db := newTestDB(t)
	svc := newMaintenanceService(db)

	user := createUser(t, db, "u@example.com")

	task, err := svc.Create(user.ID, &dto.CreateMaintenanceRequest{Title: "Gutter cleaning"})
	require.NoError(t, err)
	require.Nil(t, task.CompletedAt)

	done := "completed"
	_, err = svc.Update(task.ID, user.ID, &dto.UpdateMaintenanceRequest{Status: &done})
	require.NoError(t, err)

	got, err := svc.Get(task.ID, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.CompletedAt)
}

func TestMaintenanceListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := newMaintenanceService(db)

	user := createUser(t, db, "u@example.com")
	property := createProperty(t, db)
	grantAccess(t, db, property.ID, user.ID, access.RoleManager, access.StatusActive)

	_, err := svc.Create(user.ID, &dto.CreateMaintenanceRequest{
		Title: "Fix lock", Priority: "high", PropertyID: &property.ID,
	})
	require.NoError(t, err)
	_, err = svc.Create(user.ID, &dto.CreateMaintenanceRequest{Title: "Mow lawn", Priority: "low"})
	require.NoError(t, err)

	all, err := svc.List(user.ID, &dto.MaintenanceFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	high, err := svc.List(user.ID, &dto.MaintenanceFilter{Priority: "high"})
	require.NoError(t, err)
	require.Len(t, high, 1)
	assert.Equal(t, "Fix lock", high[0].Title)

	scoped, err := svc.List(user.ID, &dto.MaintenanceFilter{PropertyID: &property.ID})
	require.NoError(t, err)
	assert.Len(t, scoped, 1)
}

func TestMaintenanceTenantCannotTouchPropertyTasks(t *testing.T) {
	db := newTestDB(t)
	svc := newMaintenanceService(db)

	owner := createUser(t, db, "owner@example.com")
	tenant := createUser(t, db, "tenant@example.com")
	property := createProperty(t, db)
	grantAccess(t, db, property.ID, owner.ID, access.RoleOwner, access.StatusActive)
	grantAccess(t, db, property.ID, tenant.ID, access.RoleTenant, access.StatusActive)

	task, err := svc.Create(owner.ID, &dto.CreateMaintenanceRequest{
		Title: "Boiler service", PropertyID: &property.ID,
	})
	require.NoError(t, err)

	_, err = svc.Get(task.ID, tenant.ID)
	assert.ErrorIs(t, err, access.ErrDenied)

	assert.ErrorIs(t, svc.Delete(task.ID, tenant.ID), access.ErrDenied)
}

func TestChecklistSeasonValidationAndToggle(t *testing.T) {
	db := newTestDB(t)
	svc := NewChecklistService(db, access.NewGate(db))

	user := createUser(t, db, "u@example.com")

	_, err := svc.Create(user.ID, &dto.CreateChecklistItemRequest{Task: "Clean gutters", Season: "autumn"})
	assert.ErrorIs(t, err, ErrInvalidSeason)

	item, err := svc.Create(user.ID, &dto.CreateChecklistItemRequest{Task: "Clean gutters", Season: "fall"})
	require.NoError(t, err)

	done := true
	_, err = svc.Update(item.ID, user.ID, &dto.UpdateChecklistItemRequest{IsCompleted: &done})
	require.NoError(t, err)

	items, err := svc.List(user.ID, nil, "fall")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsCompleted)
	assert.NotNil(t, items[0].CompletedAt)

	undone := false
	_, err = svc.Update(item.ID, user.ID, &dto.UpdateChecklistItemRequest{IsCompleted: &undone})
	require.NoError(t, err)

	items, err = svc.List(user.ID, nil, "fall")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].IsCompleted)
	assert.Nil(t, items[0].CompletedAt)
}
