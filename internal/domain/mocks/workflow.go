// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/mouse-blink/mistype/internal/domain"
	m "github.com/mouse-blink/mistype/internal/model"
)

// MockWorkflow is a mock implementation of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a MockWorkflow that asserts its expectations on
// test cleanup.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	mk := &MockWorkflow{}
	mk.Mock.Test(t)

	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// Estimate mocks domain.Workflow.Estimate.
func (mk *MockWorkflow) Estimate(args domain.EstimateArgs) (map[m.Path]m.SiteCounts, error) {
	ret := mk.Called(args)

	var counts map[m.Path]m.SiteCounts
	if ret.Get(0) != nil {
		counts = ret.Get(0).(map[m.Path]m.SiteCounts)
	}

	return counts, ret.Error(1)
}

// Run mocks domain.Workflow.Run.
func (mk *MockWorkflow) Run(args domain.RunArgs) ([]m.RunSummary, error) {
	ret := mk.Called(args)

	var summaries []m.RunSummary
	if ret.Get(0) != nil {
		summaries = ret.Get(0).([]m.RunSummary)
	}

	return summaries, ret.Error(1)
}

// View mocks domain.Workflow.View.
func (mk *MockWorkflow) View(args domain.ViewArgs) ([]m.FileRun, error) {
	ret := mk.Called(args)

	var runs []m.FileRun
	if ret.Get(0) != nil {
		runs = ret.Get(0).([]m.FileRun)
	}

	return runs, ret.Error(1)
}

var _ domain.Workflow = (*MockWorkflow)(nil)
