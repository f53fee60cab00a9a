package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type deal struct {
	stage string
	value int64
}

var stages = []string{"Lead", "Qualified", "Proposal", "Negotiation", "Won", "Lost"}

func TestSum(t *testing.T) {
	value := func(d deal) int64 { return d.value }

	assert.Equal(t, int64(0), Sum([]deal{}, value))
	assert.Equal(t, int64(0), Sum[deal, int64](nil, value))
	assert.Equal(t, int64(350), Sum([]deal{{value: 100}, {value: 250}}, value))
}

func TestCount(t *testing.T) {
	deals := []deal{{stage: "Won"}, {stage: "Lead"}, {stage: "Won"}}

	assert.Equal(t, 3, Count(deals, nil))
	assert.Equal(t, 2, Count(deals, func(d deal) bool { return d.stage == "Won" }))
	assert.Equal(t, 0, Count([]deal{}, nil))
}

func TestGroupByPreservesKeyOrder(t *testing.T) {
	deals := []deal{
		{stage: "Won", value: 1},
		{stage: "Lead", value: 2},
		{stage: "Won", value: 3},
	}

	groups := GroupBy(deals, func(d deal) string { return d.stage }, stages)

	assert.Len(t, groups, len(stages))
	for i, g := range groups {
		assert.Equal(t, stages[i], g.Key)
	}
	assert.Len(t, Lookup(groups, "Won"), 2)
	assert.Equal(t, int64(1), Lookup(groups, "Won")[0].value, "items keep arrival order inside a group")
	assert.Empty(t, Lookup(groups, "Proposal"))
	assert.NotNil(t, Lookup(groups, "Proposal"))
}

func TestGroupByEmptyInput(t *testing.T) {
	groups := GroupBy(nil, func(d deal) string { return d.stage }, stages)

	assert.Len(t, groups, len(stages))
	for _, g := range groups {
		assert.Empty(t, g.Items)
	}
}

func TestGroupByUnlistedAndDuplicateKeys(t *testing.T) {
	deals := []deal{{stage: "Frozen"}, {stage: "Lead"}}
	ordered := []string{"Lead", "Won", "Lead"}

	groups := GroupBy(deals, func(d deal) string { return d.stage }, ordered)

	assert.Len(t, groups, 3)
	assert.Len(t, groups[0].Items, 1)
	assert.Empty(t, groups[2].Items)

	total := 0
	for _, g := range groups {
		total += len(g.Items)
	}
	assert.Equal(t, 1, total, "unlisted keys are excluded")
}
