package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seed = "../../data/seeds/fleet.json"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAuditCommand(t *testing.T) {
	out, err := execute(t, "audit", "--snapshot", seed)
	require.NoError(t, err, out)

	var res struct {
		Reports []struct {
			RequirementID string `json:"requirement_id"`
			Status        string `json:"status"`
		} `json:"reports"`
		Summary struct {
			OverallStatus string `json:"overall_status"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Reports, 5)
	assert.Equal(t, "1.5", res.Reports[4].RequirementID)
	assert.Equal(t, "passed", res.Reports[4].Status)
	assert.NotEqual(t, "FAILED", res.Summary.OverallStatus)
}

func TestAuditCommandOptions(t *testing.T) {
	_, err := execute(t, "audit", "--snapshot", seed, "--baseline", "0")
	require.NoError(t, err)

	_, err = execute(t, "audit", "--snapshot", "missing.json")
	require.Error(t, err)
}

func TestMatchCommandApply(t *testing.T) {
	out, err := execute(t, "match", "--snapshot", seed, "--apply")
	require.NoError(t, err, out)

	var res struct {
		Results map[string]struct {
			IsValid bool `json:"is_valid"`
			RouteID int  `json:"route_id"`
		} `json:"results"`
		Applied []struct {
			OrderID int `json:"order_id"`
			RouteID int `json:"route_id"`
		} `json:"applied"`
		Summary *struct {
			TotalRequirements int `json:"total_requirements"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))

	require.Contains(t, res.Results, "102")
	assert.NotContains(t, res.Results, "101", "orders already on a route are not matched again")
	require.NotNil(t, res.Summary)
	assert.Equal(t, 5, res.Summary.TotalRequirements)
}

func TestSnapshotFlagRequired(t *testing.T) {
	_, err := execute(t, "audit")
	require.Error(t, err)
}
