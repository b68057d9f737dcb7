package services

import (
	"testing"

	"github.com/propdesk/propdesk/internal/access"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDocumentService(db *gorm.DB) *DocumentService {
	return NewDocumentService(db, access.NewGate(db))
}

func TestTenantCanReadDocumentsButNotWrite(t *testing.T) {
	db := newTestDB(t)
	svc := newDocumentService(db)

	owner := createUser(t, db, "owner@example.com")
	tenant := createUser(t, db, "tenant@example.com")
	property := createProperty(t, db)
	grantAccess(t, db, property.ID, owner.ID, access.RoleOwner, access.StatusActive)
	grantAccess(t, db, property.ID, tenant.ID, access.RoleTenant, access.StatusActive)

	doc, err := svc.Create(owner.ID, &dto.CreateDocumentRequest{
		Title:      "Lease 2026",
		Category:   "lease",
		PropertyID: &property.ID,
	})
	require.NoError(t, err)

	got, err := svc.Get(doc.ID, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lease 2026", got.Title)

	title := "tampered"
	_, err = svc.Update(doc.ID, tenant.ID, &dto.UpdateDocumentRequest{Title: &title})
	assert.ErrorIs(t, err, access.ErrDenied)

	assert.ErrorIs(t, svc.Delete(doc.ID, tenant.ID), access.ErrDenied)

	// Tenants cannot create property documents either.
	_, err = svc.Create(tenant.ID, &dto.CreateDocumentRequest{
		Title:      "fake",
		Category:   "lease",
		PropertyID: &property.ID,
	})
	assert.ErrorIs(t, err, access.ErrDenied)
}

func TestListDocumentsUnionOfOwnAndPropertyScoped(t *testing.T) {
	db := newTestDB(t)
	svc := newDocumentService(db)

	owner := createUser(t, db, "owner@example.com")
	tenant := createUser(t, db, "tenant@example.com")
	property := createProperty(t, db)
	grantAccess(t, db, property.ID, owner.ID, access.RoleOwner, access.StatusActive)
	grantAccess(t, db, property.ID, tenant.ID, access.RoleTenant, access.StatusActive)

	// Property-scoped doc created by the owner.
	_, err := svc.Create(owner.ID, &dto.CreateDocumentRequest{
		Title: "Lease", Category: "lease", PropertyID: &property.ID,
	})
	require.NoError(t, err)

	// The tenant's personal unscoped doc.
	_, err = svc.Create(tenant.ID, &dto.CreateDocumentRequest{
		Title: "Renters insurance", Category: "insurance",
	})
	require.NoError(t, err)

	// The owner's personal unscoped doc, invisible to the tenant.
	_, err = svc.Create(owner.ID, &dto.CreateDocumentRequest{
		Title: "Tax return", Category: "tax",
	})
	require.NoError(t, err)

	docs, err := svc.List(tenant.ID, &dto.DocumentFilter{})
	require.NoError(t, err)
	titles := make([]string, 0, len(docs))
	for _, d := range docs {
		titles = append(titles, d.Title)
	}
	assert.ElementsMatch(t, []string{"Lease", "Renters insurance"}, titles)
}

func TestUnscopedDocumentCreatorOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newDocumentService(db)

	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	doc, err := svc.Create(alice.ID, &dto.CreateDocumentRequest{
		Title: "Private", Category: "misc",
	})
	require.NoError(t, err)

	_, err = svc.Get(doc.ID, bob.ID)
	assert.ErrorIs(t, err, access.ErrDenied)

	_, err = svc.Get(doc.ID, alice.ID)
	require.NoError(t, err)
}

func TestMoveDocumentRequiresRightsOnBothProperties(t *testing.T) {
	db := newTestDB(t)
	svc := newDocumentService(db)

	user := createUser(t, db, "u@example.com")
	from := createProperty(t, db)
	to := createProperty(t, db)
	grantAccess(t, db, from.ID, user.ID, access.RoleOwner, access.StatusActive)

	doc, err := svc.Create(user.ID, &dto.CreateDocumentRequest{
		Title: "Deed", Category: "legal", PropertyID: &from.ID,
	})
	require.NoError(t, err)

	// No rights on the destination.
	_, err = svc.Update(doc.ID, user.ID, &dto.UpdateDocumentRequest{PropertyID: &to.ID})
	assert.ErrorIs(t, err, access.ErrDenied)

	grantAccess(t, db, to.ID, user.ID, access.RoleManager, access.StatusActive)

	moved, err := svc.Update(doc.ID, user.ID, &dto.UpdateDocumentRequest{PropertyID: &to.ID})
	require.NoError(t, err)
	require.NotNil(t, moved.PropertyID)
	assert.Equal(t, to.ID, *moved.PropertyID)
}
