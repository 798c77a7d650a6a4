package project_dto

// Stages optional; ohne Angabe gelten entity.DefaultStages.
type CreateProjectRequest struct {
	Name        string   `json:"name" validate:"required,min=3,max=255"`
	Description string   `json:"description" validate:"max=2000"`
	Stages      []string `json:"stages,omitempty" validate:"omitempty,min=1,max=32,unique,dive,required,max=64"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=3,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type UpdateStagesRequest struct {
	Stages []string `json:"stages" validate:"required,min=1,max=32,unique,dive,required,max=64"`
}

type MemberEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ParamProjectID struct {
	ID string `params:"project_id" validate:"required,uuid"`
}
