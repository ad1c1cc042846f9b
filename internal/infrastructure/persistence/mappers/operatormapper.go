package mappers

import (
	"fleetdesk/internal/domain/operator"
	"fleetdesk/internal/infrastructure/persistence/models"
)

func OperatorToModel(o *operator.Operator) *models.OperatorModel {
	return &models.OperatorModel{ID: o.ID, Rank: o.Rank, FName: o.FName, LName: o.LName}
}

func OperatorToEntity(m *models.OperatorModel) *operator.Operator {
	return &operator.Operator{ID: m.ID, Rank: m.Rank, FName: m.FName, LName: m.LName}
}

func OperatorsToEntities(ms []models.OperatorModel) []*operator.Operator {
	out := make([]*operator.Operator, 0, len(ms))
	for i := range ms {
		out = append(out, OperatorToEntity(&ms[i]))
	}
	return out
}
