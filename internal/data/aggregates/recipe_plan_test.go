package aggregates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type planChild struct {
	ID   int
	Text string
}

func childID(c planChild) int { return c.ID }

func TestPlanChildren(t *testing.T) {
	t.Run("matching ids update and missing ids delete", func(t *testing.T) {
		plan := planChildren([]int{1, 2, 3}, []planChild{{ID: 1}, {ID: 3}}, childID)
		assert.Equal(t, []planChild{{ID: 1}, {ID: 3}}, plan.updates)
		assert.Empty(t, plan.inserts)
		assert.Equal(t, []int{2}, plan.deletes)
	})

	t.Run("zero and foreign ids insert", func(t *testing.T) {
		plan := planChildren([]int{1}, []planChild{{ID: 0, Text: "new"}, {ID: 42, Text: "foreign"}, {ID: 1}}, childID)
		assert.Equal(t, []planChild{{ID: 1}}, plan.updates)
		assert.Equal(t, []planChild{{ID: 0, Text: "new"}, {ID: 42, Text: "foreign"}}, plan.inserts)
		assert.Empty(t, plan.deletes)
	})

	t.Run("repeated id updates once then inserts", func(t *testing.T) {
		plan := planChildren([]int{5}, []planChild{{ID: 5, Text: "a"}, {ID: 5, Text: "b"}}, childID)
		assert.Equal(t, []planChild{{ID: 5, Text: "a"}}, plan.updates)
		assert.Equal(t, []planChild{{ID: 5, Text: "b"}}, plan.inserts)
		assert.Empty(t, plan.deletes)
	})

	t.Run("empty payload deletes everything", func(t *testing.T) {
		plan := planChildren[planChild]([]int{1, 2}, nil, childID)
		assert.Empty(t, plan.updates)
		assert.Empty(t, plan.inserts)
		assert.Equal(t, []int{1, 2}, plan.deletes)
	})
}
