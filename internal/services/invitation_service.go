package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/propdesk/propdesk/internal/access"
	"github.com/propdesk/propdesk/internal/config"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/propdesk/propdesk/internal/mailer"
	"github.com/propdesk/propdesk/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAlreadyAssociated = errors.New("user is already associated with this property")
	ErrInvalidInvitation = errors.New("invalid or expired invitation")
	ErrMemberNotFound    = errors.New("property user association not found")
	ErrCannotRemoveSelf  = errors.New("you cannot remove yourself from the property")
	ErrLastOwner         = errors.New("a property must keep at least one active owner")
	ErrInvalidRole       = errors.New("invalid role, must be one of: owner, manager, tenant")
	ErrInvalidStatus     = errors.New("invalid status, must be one of: pending, active, declined")
)

// InvitationService owns the PropertyAccess lifecycle: invites, accepts,
// declines, member role changes and removals.
type InvitationService struct {
	db   *gorm.DB
	gate *access.Gate
	cfg  *config.Config
	mail mailer.Enqueuer
}

func NewInvitationService(db *gorm.DB, gate *access.Gate, cfg *config.Config, mail mailer.Enqueuer) *InvitationService {
	return &InvitationService{db: db, gate: gate, cfg: cfg, mail: mail}
}

// Invite grants or refreshes access for an email address. Only active
// owners may invite; managers cannot. The registered and unregistered
// invitee paths diverge here.
func (s *InvitationService) Invite(propertyID, inviterID uuid.UUID, req *dto.InviteRequest) (*dto.InviteResponse, error) {
	if req.Email == "" || req.Role == "" {
		return nil, errors.New("email and role are required")
	}
	if !access.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	if err := s.gate.Authorize(propertyID, inviterID, access.RoleOwner); err != nil {
		return nil, err
	}

	var property models.Property
	if err := s.db.First(&property, "id = ?", propertyID).Error; err != nil {
		// The gate already passed, so the property exists; treat a miss as
		// the same opaque denial.
		return nil, access.ErrDenied
	}

	var inviter models.User
	if err := s.db.First(&inviter, "id = ?", inviterID).Error; err != nil {
		return nil, fmt.Errorf("inviter not found: %w", err)
	}

	var invitee models.User
	err := s.db.Where("email = ?", req.Email).First(&invitee).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return s.inviteUnregistered(&property, &inviter, req)
	}
	return s.inviteRegistered(&property, &inviter, &invitee, req)
}

func (s *InvitationService) inviteRegistered(property *models.Property, inviter, invitee *models.User, req *dto.InviteRequest) (*dto.InviteResponse, error) {
	now := time.Now().UTC()
	token := uuid.New().String()

	var existing models.PropertyAccess
	err := s.db.Where("property_id = ? AND user_id = ?", property.ID, invitee.ID).First(&existing).Error
	switch {
	case err == nil:
		if existing.Status == string(access.StatusActive) {
			return nil, ErrAlreadyAssociated
		}
		// Re-inviting a pending or declined association overwrites the role
		// and issues a fresh token; the previous token dies here.
		updates := map[string]interface{}{
			"role":             req.Role,
			"status":           string(access.StatusPending),
			"invited_by":       inviter.ID,
			"invited_at":       now,
			"invitation_token": token,
		}
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, err
		}
		s.sendInvitation(invitee, inviter, property, req.Role, token)
		return &dto.InviteResponse{
			Message:          "Invitation updated and sent successfully",
			PropertyAccessID: &existing.ID,
		}, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		pa := models.PropertyAccess{
			ID:              uuid.New(),
			PropertyID:      property.ID,
			UserID:          invitee.ID,
			Role:            req.Role,
			Status:          string(access.StatusPending),
			InvitedBy:       &inviter.ID,
			InvitedAt:       &now,
			InvitationToken: &token,
		}
		if err := s.db.Create(&pa).Error; err != nil {
			// Unique (property_id, user_id): a concurrent invite for the
			// same pair already landed.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrAlreadyAssociated
			}
			return nil, err
		}
		s.sendInvitation(invitee, inviter, property, req.Role, token)
		return &dto.InviteResponse{
			Message:          "Invitation sent successfully",
			PropertyAccessID: &pa.ID,
		}, nil

	default:
		return nil, err
	}
}

func (s *InvitationService) inviteUnregistered(property *models.Property, inviter *models.User, req *dto.InviteRequest) (*dto.InviteResponse, error) {
	token := uuid.New().String()
	expires := time.Now().UTC().Add(s.cfg.InvitationTTL)

	// Re-inviting the same email replaces the earlier invite for this
	// property instead of stacking a second one.
	var inv models.PendingInvitation
	err := s.db.Where("email = ? AND property_id = ?", req.Email, property.ID).First(&inv).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"role":             req.Role,
			"invited_by":       inviter.ID,
			"invitation_token": token,
			"expires_at":       expires,
		}
		if err := s.db.Model(&inv).Updates(updates).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		inv = models.PendingInvitation{
			ID:              uuid.New(),
			Email:           req.Email,
			PropertyID:      property.ID,
			Role:            req.Role,
			InvitedBy:       inviter.ID,
			InvitationToken: token,
			ExpiresAt:       expires,
		}
		if err := s.db.Create(&inv).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	url := fmt.Sprintf("%s/register?invitation=%s", s.cfg.FrontendURL, token)
	s.mail.Enqueue(mailer.RegistrationInvitation(req.Email, inviter.FullName(), property.Address, req.Role, url))

	return &dto.InviteResponse{
		Message:             "Invitation sent to new user",
		PendingInvitationID: &inv.ID,
	}, nil
}

func (s *InvitationService) sendInvitation(invitee, inviter *models.User, property *models.Property, role, token string) {
	url := fmt.Sprintf("%s/accept-invitation?token=%s", s.cfg.FrontendURL, token)
	s.mail.Enqueue(mailer.PropertyInvitation(invitee.Email, inviter.FullName(), property.Address, role, url))
}

// Accept redeems an invitation token. The lookup is scoped to the
// authenticated user id, so a leaked token is useless to anyone else.
func (s *InvitationService) Accept(userID uuid.UUID, token string) (*dto.AcceptInvitationResponse, error) {
	pa, err := s.findPending(userID, token)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":           string(access.StatusActive),
		"accepted_at":      now,
		"invitation_token": nil,
	}
	if err := s.db.Model(pa).Updates(updates).Error; err != nil {
		return nil, err
	}

	var property models.Property
	if err := s.db.First(&property, "id = ?", pa.PropertyID).Error; err != nil {
		return nil, err
	}

	return &dto.AcceptInvitationResponse{
		Message: "Invitation accepted successfully",
		Property: dto.PropertySummary{
			ID:      property.ID,
			Address: property.Address,
			City:    property.City,
			State:   property.State,
		},
		Role: pa.Role,
	}, nil
}

// Decline marks the invitation declined and burns the token.
func (s *InvitationService) Decline(userID uuid.UUID, token string) error {
	pa, err := s.findPending(userID, token)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"status":           string(access.StatusDeclined),
		"invitation_token": nil,
	}
	return s.db.Model(pa).Updates(updates).Error
}

func (s *InvitationService) findPending(userID uuid.UUID, token string) (*models.PropertyAccess, error) {
	if token == "" {
		return nil, errors.New("invitation token is required")
	}

	var pa models.PropertyAccess
	err := s.db.
		Where("user_id = ? AND status = ? AND invitation_token = ?", userID, access.StatusPending, token).
		First(&pa).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInvitation
		}
		return nil, err
	}
	return &pa, nil
}

// ListInvitations returns the caller's own pending invitations.
func (s *InvitationService) ListInvitations(userID uuid.UUID) ([]dto.InvitationResponse, error) {
	var rows []models.PropertyAccess
	err := s.db.
		Where("user_id = ? AND status = ?", userID, access.StatusPending).
		Order("invited_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]dto.InvitationResponse, 0, len(rows))
	for _, pa := range rows {
		var property models.Property
		if err := s.db.First(&property, "id = ?", pa.PropertyID).Error; err != nil {
			continue
		}

		inviter := dto.InviterSummary{Name: "Unknown"}
		if pa.InvitedBy != nil {
			var u models.User
			if err := s.db.First(&u, "id = ?", *pa.InvitedBy).Error; err == nil {
				inviter = dto.InviterSummary{ID: &u.ID, Name: u.FullName()}
			}
		}

		token := ""
		if pa.InvitationToken != nil {
			token = *pa.InvitationToken
		}

		out = append(out, dto.InvitationResponse{
			ID: pa.ID,
			Property: dto.PropertySummary{
				ID:      property.ID,
				Address: property.Address,
				City:    property.City,
				State:   property.State,
			},
			Role:      pa.Role,
			InvitedBy: inviter,
			InvitedAt: pa.InvitedAt,
			Token:     token,
		})
	}
	return out, nil
}

// Members lists every association for a property, including pending and
// declined ones. Owner or manager only.
func (s *InvitationService) Members(propertyID, callerID uuid.UUID) ([]dto.MemberResponse, error) {
	if err := s.gate.Authorize(propertyID, callerID, access.Managers...); err != nil {
		return nil, err
	}

	var rows []models.PropertyAccess
	if err := s.db.Where("property_id = ?", propertyID).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]dto.MemberResponse, 0, len(rows))
	for _, pa := range rows {
		var u models.User
		if err := s.db.First(&u, "id = ?", pa.UserID).Error; err != nil {
			continue
		}
		out = append(out, dto.MemberResponse{
			ID:         pa.ID,
			UserID:     u.ID,
			Email:      u.Email,
			FirstName:  u.FirstName,
			LastName:   u.LastName,
			Role:       pa.Role,
			Status:     pa.Status,
			InvitedAt:  pa.InvitedAt,
			AcceptedAt: pa.AcceptedAt,
		})
	}
	return out, nil
}

// UpdateMember changes a member's role and/or status. Active owners only.
// Demoting the last active owner is rejected.
func (s *InvitationService) UpdateMember(propertyID, accessID, callerID uuid.UUID, req *dto.UpdateMemberRequest) (*models.PropertyAccess, error) {
	if err := s.gate.Authorize(propertyID, callerID, access.RoleOwner); err != nil {
		return nil, err
	}

	var pa models.PropertyAccess
	err := s.db.Where("id = ? AND property_id = ?", accessID, propertyID).First(&pa).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Role != nil {
		if !access.ValidRole(*req.Role) {
			return nil, ErrInvalidRole
		}
		updates["role"] = *req.Role
	}
	if req.Status != nil {
		if !access.ValidStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return &pa, nil
	}

	demotesOwner := pa.Role == string(access.RoleOwner) && pa.Status == string(access.StatusActive) &&
		((req.Role != nil && *req.Role != string(access.RoleOwner)) ||
			(req.Status != nil && *req.Status != string(access.StatusActive)))
	if demotesOwner {
		owners, err := s.activeOwnerCount(propertyID)
		if err != nil {
			return nil, err
		}
		if owners <= 1 {
			return nil, ErrLastOwner
		}
	}

	if err := s.db.Model(&pa).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &pa, nil
}

// RemoveMember deletes an association. Active owners only; the caller may
// not remove themselves, and the last active owner may not be removed.
func (s *InvitationService) RemoveMember(propertyID, accessID, callerID uuid.UUID) error {
	if err := s.gate.Authorize(propertyID, callerID, access.RoleOwner); err != nil {
		return err
	}

	var pa models.PropertyAccess
	err := s.db.Where("id = ? AND property_id = ?", accessID, propertyID).First(&pa).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	if pa.UserID == callerID {
		return ErrCannotRemoveSelf
	}

	if pa.Role == string(access.RoleOwner) && pa.Status == string(access.StatusActive) {
		owners, err := s.activeOwnerCount(propertyID)
		if err != nil {
			return err
		}
		if owners <= 1 {
			return ErrLastOwner
		}
	}

	return s.db.Delete(&pa).Error
}

func (s *InvitationService) activeOwnerCount(propertyID uuid.UUID) (int64, error) {
	var n int64
	err := s.db.Model(&models.PropertyAccess{}).
		Where("property_id = ? AND role = ? AND status = ?", propertyID, access.RoleOwner, access.StatusActive).
		Count(&n).Error
	return n, err
}
