// Package mocks provides testify mocks for the controller interfaces.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/mouse-blink/mistype/internal/controller"
	m "github.com/mouse-blink/mistype/internal/model"
)

// MockUI is a mock implementation of controller.UI.
type MockUI struct {
	mock.Mock
}

// NewMockUI creates a MockUI that asserts its expectations on test
// cleanup.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mk := &MockUI{}
	mk.Mock.Test(t)

	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// DisplayEstimation mocks controller.UI.DisplayEstimation.
func (mk *MockUI) DisplayEstimation(counts map[m.Path]m.SiteCounts, err error) error {
	ret := mk.Called(counts, err)

	return ret.Error(0)
}

// DisplayRunSummary mocks controller.UI.DisplayRunSummary.
func (mk *MockUI) DisplayRunSummary(summaries []m.RunSummary) error {
	ret := mk.Called(summaries)

	return ret.Error(0)
}

// DisplayRuns mocks controller.UI.DisplayRuns.
func (mk *MockUI) DisplayRuns(runs []m.FileRun) error {
	ret := mk.Called(runs)

	return ret.Error(0)
}

var _ controller.UI = (*MockUI)(nil)
