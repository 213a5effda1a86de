package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/mistype/internal/domain"
	m "github.com/mouse-blink/mistype/internal/model"
)

func TestListCmd(t *testing.T) {
	mockWorkflow, mockUI := withMocks(t)

	counts := map[m.Path]m.SiteCounts{"app.py": {Returns: 1}}

	mockWorkflow.On("Estimate", mock.MatchedBy(func(args domain.EstimateArgs) bool {
		return len(args.Paths) == 1 && args.Paths[0] == m.Path("pkg")
	})).Return(counts, nil)
	mockUI.On("DisplayEstimation", counts, nil).Return(nil)

	require.NoError(t, execute(t, newListCmd(), "pkg"))
}
