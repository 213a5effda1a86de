package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/mistype/internal/model"
)

func TestViewCmd(t *testing.T) {
	mockWorkflow, mockUI := withMocks(t)

	runs := []m.FileRun{{
		Source:   m.Source{Origin: &m.File{Path: "app.py", Hash: "abc"}},
		Strategy: "func_pm_type_change",
	}}

	mockWorkflow.On("View", mock.Anything).Return(runs, nil)
	mockUI.On("DisplayRuns", runs).Return(nil)

	require.NoError(t, execute(t, newViewCmd()))
}
