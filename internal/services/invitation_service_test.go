package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/propdesk/propdesk/internal/access"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/propdesk/propdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInvitationService(db *gorm.DB, mail *mailRecorder) *InvitationService {
	return NewInvitationService(db, access.NewGate(db), testConfig(), mail)
}

func TestInviteRegisteredUserCreatesPendingAccess(t *testing.T) {
	db := newTestDB(t)
	mail := &mailRecorder{}
	svc := newInvitationService(db, mail)

	owner := createUser(t, db, "owner@example.com")
	invitee := createUser(t, db, "invitee@example.com")
	property := createProperty(t, db)
	grantAccess(t, db, property.ID, owner.ID, access.RoleOwner, access.StatusActive)

	resp, err := svc.Invite(property.ID, owner.ID, &dto.InviteRequest{Email: invitee.Email, Role: "manager"})
	require.NoError(t, err)
	require.NotNil(t, resp.PropertyAccessID)
	assert.Nil(t, resp.PendingInvitationID)

	var pa models.PropertyAccess
	require.NoError(t, db.First(&pa, "id = ?", *resp.PropertyAccessID).Error)
	assert.Equal(t, "manager", pa.Role)
	assert.Equal(t, string(access.StatusPending), pa.Status)
	require.NotNil(t, pa.InvitationToken)
	require.NotNil(t, pa.InvitedBy)
	assert.Equal(t, owner.ID, *pa.InvitedBy)

	require.Len(t, mail.msgs, 1)
	assert.Equal(t, invitee.Email, mail.msgs[0].To)
}

func TestInviteManagerCannotInvite(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationService(db, &mailRecorder{})

	manager := createUser(t, db, "manager@example.com")
	property := createProperty(t, db)
	grantAccess(t, db, property.ID, manager.ID, access.RoleManager, access.StatusActive)

	_, err := svc.Invite(property.ID, manager.ID, &dto.InviteRequest{Email: "x@example.com", Role: "tenant"})
	assert.ErrorIs(t, err, access.ErrDenied)
}

func TestInviteActiveMemberConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationService(db, &mailRecorder{})

	owner := createUser(t, db, "owner@example.com")
	member := createUser(t, db, "member@example.com")
	property := createProperty(t, db)
	grantAccess(t, db, property.ID, owner.ID, access.RoleOwner, access.StatusActive)
	grantAccess(t, db, property.ID, member.ID, access.RoleTenant, access.StatusActive)

	_, err := svc.Invite(property.ID, owner.ID, &dto.InviteRequest{Email: member.Email, Role: "manager"})
	assert.ErrorIs(t, err, ErrAlreadyAssociated)
}

func TestReinviteDeclinedMemberIssuesFreshToken(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationService(db, &mailRecorder{})

	owner := createUser(t, db, "owner@example.com")
	member := createUser(t, db, "member@example.com")
	property := createProperty(t, db)
	grantAccess(t, db, property.ID, owner.ID, access.RoleOwner, access.StatusActive)

	declined := grantAccess(t, db, property.ID, member.ID, access.RoleTenant, access.StatusDeclined)
	oldToken := "stale-token"
	require.NoError(t, db.Model(declined).Update("invitation_token", oldToken).Error)

	resp, err := svc.Invite(property.ID, owner.ID, &dto.InviteRequest{Email: member.Email, Role: "manager"})
	require.NoError(t, err)
	require.NotNil(t, resp.PropertyAccessID)
	assert.Equal(t, declined.ID, *resp.PropertyAccessID)

	var pa models.PropertyAccess
	require.NoError(t, db.First(&pa, "id = ?", declined.ID).Error)
	assert.Equal(t, "manager", pa.Role)
	assert.Equal(t, string(access.StatusPending), pa.Status)
	require.NotNil(t, pa.InvitationToken)
	assert.NotEqual(t, oldToken, *pa.InvitationToken)
}

func TestInviteUnregisteredEmailCreatesPendingInvitation(t *testing.T) {
	db := newTestDB(t)
	mail := &mailRecorder{}
	svc := newInvitationService(db, mail)

	owner := createUser(t, db, "owner@example.com")
	property := createProperty(t, db)
	grantAccess(t, db, property.ID, owner.ID, access.RoleOwner, access.StatusActive)

	resp, err := svc.Invite(property.ID, owner.ID, &dto.InviteRequest{Email: "new@example.com", Role: "tenant"})
	require.NoError(t, err)
	require.NotNil(t, resp.PendingInvitationID)
	assert.Nil(t, resp.PropertyAccessID)

	var inv models.PendingInvitation
	require.NoError(t, db.First(&inv, "id = ?", *resp.PendingInvitationID).Error)
	assert.Equal(t, "new@example.com", inv.Email)
	assert.Equal(t, "tenant", inv.Role)

	// Re-inviting replaces the row instead of stacking a second one.
	resp2, err := svc.Invite(property.ID, owner.ID, &dto.InviteRequest{Email: "new@example.com", Role: "manager"})
	require.NoError(t, err)
	assert.Equal(t, inv.ID, *resp2.PendingInvitationID)

	var count int64
	require.NoError(t, db.Model(&models.PendingInvitation{}).
		Where("email = ? AND property_id = ?", "new@example.com", property.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, db.First(&inv, "id = ?", inv.ID).Error)
	assert.Equal(t, "manager", inv.Role)
}

func TestAcceptInvitationActivatesAccess(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationService(db, &mailRecorder{})

	owner := createUser(t, db, "owner@example.com")
	invitee := createUser(t, db, "invitee@example.com")
	property := createProperty(t, db)
	grantAccess(t, db, property.ID, owner.ID, access.RoleOwner, access.StatusActive)

	resp, err := svc.Invite(property.ID, owner.ID, &dto.InviteRequest{Email: invitee.Email, Role: "tenant"})
	require.NoError(t, err)

	var pa models.PropertyAccess
	require.NoError(t, db.First(&pa, "id = ?", *resp.PropertyAccessID).Error)
	token := *pa.InvitationToken

	accepted, err := svc.Accept(invitee.ID, token)
	require.NoError(t, err)
	assert.Equal(t, property.ID, accepted.Property.ID)
	assert.Equal(t, "tenant", accepted.Role)

	require.NoError(t, db.First(&pa, "id = ?", pa.ID).Error)
	assert.Equal(t, string(access.StatusActive), pa.Status)
	assert.Nil(t, pa.InvitationToken)
	assert.NotNil(t, pa.AcceptedAt)

	// Token is single-use.
	_, err = svc.Accept(invitee.ID, token)
	assert.ErrorIs(t, err, ErrInvalidInvitation)
}

func TestAcceptInvitationTokenScopedToInvitee(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationService(db, &mailRecorder{})

	owner := createUser(t, db, "owner@example.com")
	invitee := createUser(t, db, "invitee@example.com")
	stranger := createUser(t, db, "stranger@example.com")
	property := createProperty(t, db)
	grantAccess(t, db, property.ID, owner.ID, access.RoleOwner, access.StatusActive)

	resp, err := svc.Invite(property.ID, owner.ID, &dto.InviteRequest{Email: invitee.Email, Role: "tenant"})
	require.NoError(t, err)

	var pa models.PropertyAccess
	require.NoError(t, db.First(&pa, "id = ?", *resp.PropertyAccessID).Error)

	_, err = svc.Accept(stranger.ID, *pa.InvitationToken)
	assert.ErrorIs(t, err, ErrInvalidInvitation)
}

func TestDeclineInvitationBurnsToken(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationService(db, &mailRecorder{})

	owner := createUser(t, db, "owner@example.com")
	invitee := createUser(t, db, "invitee@example.com")
	property := createProperty(t, db)
	grantAccess(t, db, property.ID, owner.ID, access.RoleOwner, access.StatusActive)

	resp, err := svc.Invite(property.ID, owner.ID, &dto.InviteRequest{Email: invitee.Email, Role: "manager"})
	require.NoError(t, err)

	var pa models.PropertyAccess
	require.NoError(t, db.First(&pa, "id = ?", *resp.PropertyAccessID).Error)

	require.NoError(t, svc.Decline(invitee.ID, *pa.InvitationToken))

	require.NoError(t, db.First(&pa, "id = ?", pa.ID).Error)
	assert.Equal(t, string(access.StatusDeclined), pa.Status)
	assert.Nil(t, pa.InvitationToken)
}

func TestListInvitationsReturnsOnlyPending(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationService(db, &mailRecorder{})

	owner := createUser(t, db, "owner@example.com")
	invitee := createUser(t, db, "invitee@example.com")
	p1 := createProperty(t, db)
	p2 := createProperty(t, db)
	grantAccess(t, db, p1.ID, owner.ID, access.RoleOwner, access.StatusActive)
	grantAccess(t, db, p2.ID, owner.ID, access.RoleOwner, access.StatusActive)
	grantAccess(t, db, p2.ID, invitee.ID, access.RoleTenant, access.StatusActive)

	_, err := svc.Invite(p1.ID, owner.ID, &dto.InviteRequest{Email: invitee.Email, Role: "manager"})
	require.NoError(t, err)

	invitations, err := svc.ListInvitations(invitee.ID)
	require.NoError(t, err)
	require.Len(t, invitations, 1)
	assert.Equal(t, p1.ID, invitations[0].Property.ID)
	assert.Equal(t, "manager", invitations[0].Role)
	assert.NotEmpty(t, invitations[0].Token)
}

func TestUpdateMemberLastOwnerGuard(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationService(db, &mailRecorder{})

	owner := createUser(t, db, "owner@example.com")
	property := createProperty(t, db)
	ownerPA := grantAccess(t, db, property.ID, owner.ID, access.RoleOwner, access.StatusActive)

	role := string(access.RoleManager)
	_, err := svc.UpdateMember(property.ID, ownerPA.ID, owner.ID, &dto.UpdateMemberRequest{Role: &role})
	assert.ErrorIs(t, err, ErrLastOwner)

	// A second active owner unblocks the demotion.
	other := createUser(t, db, "other@example.com")
	grantAccess(t, db, property.ID, other.ID, access.RoleOwner, access.StatusActive)

	pa, err := svc.UpdateMember(property.ID, ownerPA.ID, owner.ID, &dto.UpdateMemberRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, string(access.RoleManager), pa.Role)
}

func TestRemoveMemberGuards(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationService(db, &mailRecorder{})

	owner := createUser(t, db, "owner@example.com")
	tenant := createUser(t, db, "tenant@example.com")
	property := createProperty(t, db)
	ownerPA := grantAccess(t, db, property.ID, owner.ID, access.RoleOwner, access.StatusActive)
	tenantPA := grantAccess(t, db, property.ID, tenant.ID, access.RoleTenant, access.StatusActive)

	// Self-removal is rejected.
	assert.ErrorIs(t, svc.RemoveMember(property.ID, ownerPA.ID, owner.ID), ErrCannotRemoveSelf)

	// Tenants cannot manage members at all.
	assert.ErrorIs(t, svc.RemoveMember(property.ID, tenantPA.ID, tenant.ID), access.ErrDenied)

	require.NoError(t, svc.RemoveMember(property.ID, tenantPA.ID, owner.ID))

	err := db.First(&models.PropertyAccess{}, "id = ?", tenantPA.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRemoveMemberUnknownID(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationService(db, &mailRecorder{})

	owner := createUser(t, db, "owner@example.com")
	property := createProperty(t, db)
	grantAccess(t, db, property.ID, owner.ID, access.RoleOwner, access.StatusActive)

	err := svc.RemoveMember(property.ID, uuid.New(), owner.ID)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}
