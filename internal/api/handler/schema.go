package handler

import (
	"time"

	"github.com/classroom/scheduler/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Email    string `json:"email"    validate:"required,email,max=200"`
	Password string `json:"password" validate:"required,min=8,max=100"`
	Role     string `json:"role"     validate:"required,oneof=STUDENT TEACHER"`
}

type registerResponse struct {
	User    *domain.User `json:"user"`
	Message string       `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Token string              `json:"token"`
	User  domain.SessionClaim `json:"user"`
}

// --- Classes ---

type createClassRequest struct {
	Name        string    `json:"name"        validate:"required,min=1,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	DayOfWeek   *int      `json:"day_of_week" validate:"required,min=0,max=6"`
	StartTime   time.Time `json:"start_time"  validate:"required"`
	EndTime     time.Time `json:"end_time"    validate:"required,gtfield=StartTime"`
}

// updateClassRequest leaves nil fields unchanged. The schedule is checked
// again by the service once merged with the stored class.
type updateClassRequest struct {
	Name        *string    `json:"name"        validate:"omitnil,min=1,max=200"`
	Description *string    `json:"description" validate:"omitnil,max=2000"`
	DayOfWeek   *int       `json:"day_of_week" validate:"omitnil,min=0,max=6"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
}

func (r updateClassRequest) toDomain() domain.ClassUpdate {
	return domain.ClassUpdate{
		Name:        r.Name,
		Description: r.Description,
		DayOfWeek:   r.DayOfWeek,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
	}
}

type classResponse struct {
	Class *domain.Class `json:"class"`
}

type classListResponse struct {
	Classes []*domain.Class `json:"classes"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// --- Profile ---

type updateProfileRequest struct {
	Name         *string `json:"name"          validate:"omitnil,min=1,max=100"`
	Image        *string `json:"image"         validate:"omitnil,omitempty,url"`
	School       *string `json:"school"        validate:"omitnil,max=200"`
	ProfileClass *string `json:"profile_class" validate:"omitnil,max=200"`
	Bio          *string `json:"bio"           validate:"omitnil,max=500"`
}

func (r updateProfileRequest) toDomain() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		Name:         r.Name,
		Image:        r.Image,
		School:       r.School,
		ProfileClass: r.ProfileClass,
		Bio:          r.Bio,
	}
}

type profileResponse struct {
	Profile *domain.User `json:"profile"`
}

// --- Users (admin) ---

type changeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type userListResponse struct {
	Users []*domain.User `json:"users"`
}
