package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleArgs struct {
	Period      string   `json:"period" validate:"omitempty,period_phrase"`
	Granularity string   `json:"granularity" validate:"omitempty,granularity"`
	Subtype     string   `json:"subtype" validate:"omitempty,account_subtype"`
	Subtypes    []string `json:"subtypes" validate:"omitempty,dive,transaction_subtype"`
	Limit       int      `json:"limit" validate:"omitempty,min=1"`
}

func TestValidateStruct_Passes(t *testing.T) {
	errs := GetValidator().ValidateStruct(sampleArgs{
		Period:      "last 30 days",
		Granularity: "week",
		Subtype:     "credit_card",
		Subtypes:    []string{"deposit", "withdraw"},
		Limit:       50,
	})
	assert.Nil(t, errs)
}

func TestValidateStruct_EmptyOptionalFieldsPass(t *testing.T) {
	assert.Nil(t, GetValidator().ValidateStruct(sampleArgs{}))
}

func TestValidateStruct_PeriodPhrase(t *testing.T) {
	for _, phrase := range []string{"last 7 days", "last 12 months", "this month", "this year", "last year", "This Month"} {
		errs := GetValidator().ValidateStruct(sampleArgs{Period: phrase})
		assert.Nil(t, errs, "phrase %q should pass", phrase)
	}

	errs := GetValidator().ValidateStruct(sampleArgs{Period: "the last fortnight"})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "period")
	assert.Equal(t, "unrecognized time period", errs["period"])
}

func TestValidateStruct_Granularity(t *testing.T) {
	errs := GetValidator().ValidateStruct(sampleArgs{Granularity: "quarter"})
	require.NotNil(t, errs)
	assert.Contains(t, errs["granularity"], "day, week, month, year")
}

func TestValidateStruct_AccountSubtype(t *testing.T) {
	errs := GetValidator().ValidateStruct(sampleArgs{Subtype: "offshore"})
	require.NotNil(t, errs)
	assert.Contains(t, errs["subtype"], "checking")
}

func TestValidateStruct_TransactionSubtypes(t *testing.T) {
	errs := GetValidator().ValidateStruct(sampleArgs{Subtypes: []string{"deposit", "standing_order"}})
	require.NotNil(t, errs)

	// The failing element is reported with its index
	assert.Contains(t, errs, "subtypes[1]")
}

func TestValidateStruct_FieldNamesComeFromJSONTags(t *testing.T) {
	errs := GetValidator().ValidateStruct(sampleArgs{Limit: -3})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "limit")
	assert.Equal(t, "must be at least 1", errs["limit"])
}
