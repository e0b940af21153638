package grist_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gristlabs/grist-go/pkg/grist"
)

func TestListOptionsToValues(t *testing.T) {
	t.Parallel()

	t.Run("empty options produce no parameters", func(t *testing.T) {
		t.Parallel()

		values, err := grist.NewListOptions().ToValues()
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("nil options produce no parameters", func(t *testing.T) {
		t.Parallel()

		var opts *grist.ListOptions

		values, err := opts.ToValues()
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("filters serialize as one JSON string", func(t *testing.T) {
		t.Parallel()

		values, err := grist.NewListOptions().WithFilter("pet", "cat", "dog").ToValues()
		require.NoError(t, err)

		var filters map[string][]string

		require.NoError(t, json.Unmarshal([]byte(values.Get("filters")), &filters))
		assert.Equal(t, []string{"cat", "dog"}, filters["pet"])
	})

	t.Run("sort and limit", func(t *testing.T) {
		t.Parallel()

		values, err := grist.NewListOptions().WithSort("pet,-age").WithLimit(5).ToValues()
		require.NoError(t, err)
		assert.Equal(t, "pet,-age", values.Get("sort_by"))
		assert.Equal(t, "5", values.Get("limit"))
	})

	t.Run("zero limit is omitted", func(t *testing.T) {
		t.Parallel()

		values, err := grist.NewListOptions().WithSort("pet").ToValues()
		require.NoError(t, err)
		assert.False(t, values.Has("limit"))
	})
}

func TestRecordWriteOptionsToValues(t *testing.T) {
	t.Parallel()

	t.Run("nil options produce no parameters", func(t *testing.T) {
		t.Parallel()

		var opts *grist.RecordWriteOptions

		assert.Empty(t, opts.ToValues())
	})

	t.Run("noparse only sent when set", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, (&grist.RecordWriteOptions{}).ToValues())
		assert.Equal(t, "true", (&grist.RecordWriteOptions{NoParse: true}).ToValues().Get("noparse"))
	})
}

func TestDocUpdateSerialization(t *testing.T) {
	t.Parallel()

	t.Run("unset fields are omitted", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(grist.NewDocUpdate().WithName("Ledger"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Ledger"}`, string(data))
	})

	t.Run("explicit false survives", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(grist.NewDocUpdate().WithPinned(false))
		require.NoError(t, err)
		assert.JSONEq(t, `{"isPinned":false}`, string(data))
	})
}

func TestAccessDeltaSerialization(t *testing.T) {
	t.Parallel()

	t.Run("removed user serializes as null", func(t *testing.T) {
		t.Parallel()

		delta := grist.NewAccessDelta().
			WithUser("alice@example.com", "editors").
			WithUserRemoved("bob@example.com")

		data, err := json.Marshal(delta)
		require.NoError(t, err)
		assert.JSONEq(t, `{"users":{"alice@example.com":"editors","bob@example.com":null}}`, string(data))
	})

	t.Run("max inherited role", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(grist.NewAccessDelta().WithMaxInheritedRole("viewers"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"maxInheritedRole":"viewers"}`, string(data))
	})

	t.Run("empty delta serializes to empty object", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(grist.NewAccessDelta())
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(data))
	})
}
