package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazuruo/promptctl/internal/api"
	apperrors "github.com/chazuruo/promptctl/internal/errors"
)

func TestValuesRoundTrip(t *testing.T) {
	res := TeamResource()
	v := NewValues(res)

	v.Set("name", "Platform")
	v.Set("description", "infra team")
	v.Set("unknown", "dropped")

	assert.Equal(t, "Platform", v.Get("name"))
	assert.Equal(t, "infra team", v.Get("description"))
	assert.Empty(t, v.Get("unknown"))
}

func TestValidateRequired(t *testing.T) {
	res := TeamResource()
	v := NewValues(res)

	err := v.Validate(res)
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalid(err))

	v.Set("name", "   ")
	require.Error(t, v.Validate(res))

	v.Set("name", "Platform")
	assert.NoError(t, v.Validate(res))
}

func TestValidateRequiredMultiSelect(t *testing.T) {
	res := Resource{
		Name: "thing",
		Fields: []Field{
			{Key: "team_ids", Title: "Teams", Kind: KindMultiSelect, Required: true},
		},
	}
	v := NewValues(res)
	require.Error(t, v.Validate(res))

	v.SetList("team_ids", []string{"t1"})
	assert.NoError(t, v.Validate(res))
}

func TestPayloadOmitsEmptyOptionals(t *testing.T) {
	res := UserResource([]api.Team{{ID: "t1", Name: "Platform"}})
	v := NewValues(res)
	v.Set("name", "Sam Doe")
	v.Set("email", "sam@example.com")
	v.SetList("team_ids", []string{"t1"})

	p := v.Payload(res)
	assert.Equal(t, "sam@example.com", p["email"])
	assert.Equal(t, []string{"t1"}, p["team_ids"])

	res = TeamResource()
	v = NewValues(res)
	v.Set("name", "Platform")
	p = v.Payload(res)
	_, has := p["description"]
	assert.False(t, has, "empty optional scalar should be omitted")
}

func TestBuildFormBindsValues(t *testing.T) {
	res := UserResource([]api.Team{{ID: "t1", Name: "Platform"}})
	v := NewValues(res)
	v.Set("email", "sam@example.com")

	form := BuildForm(res, v)
	require.NotNil(t, form)
	// binding is by pointer: later writes are visible without rebuilding
	v.Set("email", "pat@example.com")
	assert.Equal(t, "pat@example.com", v.Get("email"))
}

func TestFieldLookup(t *testing.T) {
	res := MemberResource()
	f, ok := res.Field("role")
	require.True(t, ok)
	assert.Equal(t, KindSelect, f.Kind)
	assert.Len(t, f.Options, 3)

	_, ok = res.Field("nope")
	assert.False(t, ok)
}
