package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/service"
	"github.com/livefit/livefit-api/internal/service/booking"
)

// Users

// SignupRequest defines the payload for the user registration endpoint.
type SignupRequest struct {
	Name     string `json:"name"     validate:"required,notblank,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

// UpdateProfileRequest renames the current user.
type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,notblank,max=50"`
}

// ChangePasswordRequest defines the payload for the password change endpoint.
type ChangePasswordRequest struct {
	Password           string `json:"password"             validate:"required,password"`
	NewPassword        string `json:"new_password"         validate:"required,password"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required,password"`
}

// UserSummary is the public slice of a user returned by signup and login.
type UserSummary struct {
	ID   uuid.UUID `json:"id,omitempty"`
	Name string    `json:"name"`
}

// SignupResponse is returned by a successful signup.
type SignupResponse struct {
	User UserSummary `json:"user"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// ProfileResponse is the current user's profile.
type ProfileResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserCoursesResponse lists the current user's bookings alongside their credit.
type UserCoursesResponse struct {
	CreditUsage   booking.CreditSummary      `json:"credit_usage"`
	CourseBooking []domain.UserCourseBooking `json:"course_booking"`
}

// Credit packages and skills

// CreateCreditPackageRequest defines a new credit package.
type CreateCreditPackageRequest struct {
	Name         string  `json:"name"          validate:"required,notblank,max=50"`
	CreditAmount int     `json:"credit_amount" validate:"required,gt=0"`
	Price        float64 `json:"price"         validate:"gte=0"`
}

// CreditPackageResponse is one entry of the credit package list.
type CreditPackageResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	CreditAmount int       `json:"credit_amount"`
	Price        float64   `json:"price"`
}

// CreateSkillRequest defines a new skill.
type CreateSkillRequest struct {
	Name string `json:"name" validate:"required,notblank,max=50"`
}

// SkillResponse is one entry of the skill list.
type SkillResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Coaches

// PromoteCoachRequest defines the payload for promoting a user to coach.
type PromoteCoachRequest struct {
	ExperienceYears int    `json:"experience_years"  validate:"gte=0"`
	Description     string `json:"description"       validate:"required,notblank"`
	ProfileImageURL string `json:"profile_image_url" validate:"omitempty,https"`
}

func (req PromoteCoachRequest) profile() service.CoachProfile {
	p := service.CoachProfile{
		ExperienceYears: req.ExperienceYears,
		Description:     req.Description,
	}
	if req.ProfileImageURL != "" {
		url := req.ProfileImageURL
		p.ProfileImageURL = &url
	}
	return p
}

// UpdateCoachRequest defines the payload for a coach editing their profile.
type UpdateCoachRequest struct {
	ExperienceYears int         `json:"experience_years"  validate:"gte=0"`
	Description     string      `json:"description"       validate:"required,notblank"`
	ProfileImageURL string      `json:"profile_image_url" validate:"required,https"`
	SkillIDs        []uuid.UUID `json:"skill_ids"         validate:"required,min=1"`
}

func (req UpdateCoachRequest) profile() service.CoachProfile {
	url := req.ProfileImageURL
	return service.CoachProfile{
		ExperienceYears: req.ExperienceYears,
		Description:     req.Description,
		ProfileImageURL: &url,
		SkillIDs:        req.SkillIDs,
	}
}

// CoachUserResponse is the public slice of a coach's user record.
type CoachUserResponse struct {
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
}

// CoachDetailResponse pairs a coach profile with its user. It is returned by
// promotion and by the public coach detail endpoint.
type CoachDetailResponse struct {
	User  CoachUserResponse `json:"user"`
	Coach *domain.Coach     `json:"coach"`
}

func newCoachDetailResponse(d *service.CoachDetail) CoachDetailResponse {
	return CoachDetailResponse{
		User:  CoachUserResponse{Name: d.User.Name, Role: d.User.Role},
		Coach: d.Coach,
	}
}

// Courses

// CourseRequest carries the editable attributes of a course.
type CourseRequest struct {
	SkillID         uuid.UUID `json:"skill_id"         validate:"required"`
	Name            string    `json:"name"             validate:"required,notblank,max=100"`
	Description     string    `json:"description"      validate:"required,notblank"`
	StartAt         time.Time `json:"start_at"         validate:"required"`
	EndAt           time.Time `json:"end_at"           validate:"required,gtfield=StartAt"`
	MaxParticipants int       `json:"max_participants" validate:"required,gt=0"`
	MeetingURL      string    `json:"meeting_url"      validate:"required,https"`
}

func (req CourseRequest) details() domain.CourseDetails {
	return domain.CourseDetails{
		SkillID:         req.SkillID,
		Name:            req.Name,
		Description:     req.Description,
		StartAt:         req.StartAt,
		EndAt:           req.EndAt,
		MaxParticipants: req.MaxParticipants,
		MeetingURL:      req.MeetingURL,
	}
}

// CreateCourseRequest defines a new course for the coach identified by UserID.
type CreateCourseRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	CourseRequest
}

// CourseResponse wraps a single course.
type CourseResponse struct {
	Course *domain.Course `json:"course"`
}

// Uploads

// UploadResponse is returned after an image upload.
type UploadResponse struct {
	ImageURL string `json:"image_url"`
}

// ImageListResponse lists the uploaded images.
type ImageListResponse struct {
	ImageList []service.Image `json:"image_list"`
}
