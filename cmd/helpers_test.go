package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"q.log/tableau/instance"
	"q.log/tableau/model"
)

func mustReadYAML(t *testing.T, in string) *model.Problem {
	t.Helper()
	p, err := instance.ReadYAML(strings.NewReader(in))
	require.NoError(t, err)
	return p
}
