package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Tags     []string `json:"tags" validate:"min=1,dive,required"`
	Operator string   `json:"operator" validate:"oneof=AND OR NOT"`
}

type outer struct {
	Groups []inner `json:"groups" validate:"dive"`
	Limit  *int    `json:"limit" validate:"omitempty,min=1,max=100"`
	Hidden string  `json:"-"`
}

func TestValidateDTO(t *testing.T) {
	limit := 10
	assert.NoError(t, ValidateDTO(&outer{Groups: []inner{{Tags: []string{"go"}, Operator: "AND"}}, Limit: &limit}))
	assert.NoError(t, ValidateDTO(&outer{}))

	limit = 0
	err := ValidateDTO(&outer{Limit: &limit})
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "limit", fe.Field)
	assert.Equal(t, "min", fe.Tag)
	assert.Equal(t, "1", fe.Param)

	err = ValidateDTO(&outer{Groups: []inner{{Tags: []string{"go"}, Operator: "AND"}, {Tags: []string{"go"}, Operator: "XOR"}}})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "groups[1].operator", fe.Field)
	assert.Equal(t, "operator", fe.BaseName())

	err = ValidateDTO(&outer{Groups: []inner{{Tags: []string{"go", ""}, Operator: "OR"}}})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "groups[0].tags[1]", fe.Field)
	assert.Equal(t, "tags", fe.BaseName())
	assert.Equal(t, "required", fe.Tag)

	err = ValidateDTO(&outer{Groups: []inner{{Tags: []string{}, Operator: "OR"}}})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "groups[0].tags", fe.Field)
	assert.Equal(t, "min", fe.Tag)
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"react", "vue"}, SplitTags(" react, ,vue,"))
	assert.Empty(t, SplitTags(""))
	assert.Empty(t, SplitTags(" , "))
}
