package dto

import "fleetdesk/internal/domain/operator"

type OperatorDTO struct {
	ID    int    `json:"id"`
	Rank  string `json:"rank"`
	FName string `json:"fname"`
	LName string `json:"lname"`
}

type CreateOperatorRequest struct {
	Rank  string `json:"rank" binding:"required,max=100"`
	LName string `json:"lname" binding:"required,max=100"`
	FName string `json:"fname" binding:"required,max=100"`
}

type UpdateOperatorRequest struct {
	Rank  *string `json:"rank" binding:"omitempty,max=100"`
	LName *string `json:"lname" binding:"omitempty,max=100"`
	FName *string `json:"fname" binding:"omitempty,max=100"`
}

func ToOperatorDTO(o *operator.Operator) OperatorDTO {
	return OperatorDTO{ID: o.ID, Rank: o.Rank, FName: o.FName, LName: o.LName}
}

func ToOperatorDTOs(ops []*operator.Operator) []OperatorDTO {
	out := make([]OperatorDTO, 0, len(ops))
	for _, o := range ops {
		out = append(out, ToOperatorDTO(o))
	}
	return out
}
