package computer

import (
	"context"

	"fleetdesk/internal/domain/computer"
	"fleetdesk/internal/domain/entry"
	"fleetdesk/internal/domain/operator"
	"fleetdesk/internal/shared/query"
)

type mockComputerRepository struct {
	computer.Repository
	maxLabel    int
	lastHost    string
	byLabel     map[int]*computer.Computer
	created     []*computer.Computer
	CreateFunc  func(ctx context.Context, c *computer.Computer) error
	updatedWith *computer.Computer
}

func (m *mockComputerRepository) MaxLabel(ctx context.Context) (int, error) {
	return m.maxLabel, nil
}

func (m *mockComputerRepository) LastGeneratedHostName(ctx context.Context) (string, error) {
	return m.lastHost, nil
}

func (m *mockComputerRepository) Create(ctx context.Context, c *computer.Computer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	m.created = append(m.created, c)
	return nil
}

func (m *mockComputerRepository) GetByLabel(ctx context.Context, label int) (*computer.Computer, error) {
	return m.byLabel[label], nil
}

func (m *mockComputerRepository) GetByHostName(ctx context.Context, hostName string) (*computer.Computer, error) {
	for _, c := range m.byLabel {
		if c.HostName == hostName {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockComputerRepository) Update(ctx context.Context, label int, c *computer.Computer) (int64, error) {
	m.updatedWith = c
	if _, ok := m.byLabel[label]; ok {
		return 1, nil
	}
	return 0, nil
}

type mockEntryRepository struct {
	entry.Repository
	created []*entry.Entry
	history []*entry.Entry
}

func (m *mockEntryRepository) Create(ctx context.Context, e *entry.Entry) error {
	e.ID = len(m.created) + 1
	m.created = append(m.created, e)
	return nil
}

func (m *mockEntryRepository) ListByLabel(ctx context.Context, label int, page query.Page) ([]*entry.Entry, error) {
	return m.history, nil
}

type mockOperatorRepository struct {
	operator.Repository
	operators []*operator.Operator
}

func (m *mockOperatorRepository) List(ctx context.Context, page query.Page) ([]*operator.Operator, error) {
	return m.operators, nil
}
