package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mjcet-acm/site-backend/errs"
	"github.com/mjcet-acm/site-backend/models"
	"github.com/mjcet-acm/site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type profileHandler struct {
	responder   Responder
	logger      zerolog.Logger
	store       ProfileStore
	emailDomain string
}

func newProfileHandler(store ProfileStore, emailDomain string) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		store:       store,
		emailDomain: emailDomain,
	}
}

// createProfile registers a member profile on first login.
func (h profileHandler) createProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload profilePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError(errs.CodeInvalidPayload, "malformed request body"))
			return
		}

		if payload.UUID == nil || payload.FullName == nil || payload.Email == nil {
			h.responder.WriteError(w, errs.NewBadRequestError(errs.CodeMissingRequiredFields, "uuid, full_name and email are required"))
			return
		}

		id, err := uuid.Parse(*payload.UUID)
		if err != nil {
			h.responder.WriteError(w, errs.NewValidationError(errs.CodeInvalidPayload, "uuid", "uuid is not valid"))
			return
		}

		if err := services.ValidateEmailDomain(*payload.Email, h.emailDomain); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		profile := models.UserProfile{
			UUID:       id,
			Email:      strings.ToLower(*payload.Email),
			FullName:   *payload.FullName,
			IsActive:   true,
			MemberType: models.DefaultMemberType,
		}
		if payload.IsActive != nil {
			profile.IsActive = *payload.IsActive
		}
		if payload.MemberType != nil && *payload.MemberType != "" {
			profile.MemberType = *payload.MemberType
		}
		if payload.AcmMemberID != nil {
			profile.AcmMemberID = payload.AcmMemberID
		}
		if payload.RoleType != nil {
			profile.RoleType = payload.RoleType
		}
		if payload.LastLogin != nil {
			t, dateErr := services.ParseDate("last_login", *payload.LastLogin)
			if dateErr != nil {
				h.responder.WriteError(w, dateErr)
				return
			}
			profile.LastLogin = &t
		}

		if err := h.store.Create(&profile); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user profile", err))
			return
		}

		h.logger.Info().Str("uuid", profile.UUID.String()).Msg("user profile created")
		h.responder.WriteSuccess(w, http.StatusCreated, "profile created successfully", profile)
	}
}

// getAllProfiles returns the full member roster.
func (h profileHandler) getAllProfiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles, err := h.store.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "user profiles", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "profiles fetched successfully", profiles)
	}
}

// getProfile fetches one profile by external identity UUID.
func (h profileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "uuid"))
		if err != nil {
			h.responder.WriteError(w, errs.NewValidationError(errs.CodeInvalidPayload, "uuid", "uuid is not valid"))
			return
		}

		profile, err := h.store.FindByUUID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user profile", err))
			return
		}
		if profile == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(errs.CodeProfileNotFound, "profile not found"))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "profile fetched successfully", profile)
	}
}

// updateProfile patches a profile, copying only allow-listed fields from
// the payload. The UUID itself is immutable.
func (h profileHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "uuid"))
		if err != nil {
			h.responder.WriteError(w, errs.NewValidationError(errs.CodeInvalidPayload, "uuid", "uuid is not valid"))
			return
		}

		var payload profilePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError(errs.CodeInvalidPayload, "malformed request body"))
			return
		}

		fields := make(map[string]any)
		if payload.Email != nil {
			if err := services.ValidateEmailDomain(*payload.Email, h.emailDomain); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			fields["email"] = strings.ToLower(*payload.Email)
		}
		if payload.FullName != nil {
			fields["full_name"] = *payload.FullName
		}
		if payload.IsActive != nil {
			fields["is_active"] = *payload.IsActive
		}
		if payload.LastLogin != nil {
			t, dateErr := services.ParseDate("last_login", *payload.LastLogin)
			if dateErr != nil {
				h.responder.WriteError(w, dateErr)
				return
			}
			fields["last_login"] = t
		}
		if payload.AcmMemberID != nil {
			fields["acm_member_id"] = *payload.AcmMemberID
		}
		if payload.MemberType != nil {
			fields["member_type"] = *payload.MemberType
		}
		if payload.RoleType != nil {
			fields["role_type"] = *payload.RoleType
		}

		if len(fields) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError(errs.CodeNoValidFields, "no recognized fields in payload"))
			return
		}

		affected, err := h.store.UpdateFields(id, fields)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user profile", err))
			return
		}
		if affected == 0 {
			h.responder.WriteError(w, errs.NewNotFoundError(errs.CodeProfileNotFound, "profile not found"))
			return
		}

		profile, err := h.store.FindByUUID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user profile", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "profile updated successfully", profile)
	}
}
