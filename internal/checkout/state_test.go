package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/atelier-ng/atelier-backend/pkg/errors"
	"github.com/atelier-ng/atelier-backend/pkg/types"
)

func validInfo() CustomerInfo {
	return CustomerInfo{
		Name:    "Ada Obi",
		Email:   "ada@example.com",
		Phone:   "+2348012345678",
		Street:  "12 Awolowo Road",
		City:    "Ikoyi",
		State:   "Lagos",
		Country: "Nigeria",
	}
}

func TestSubmitInfoValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CustomerInfo)
		field  string
	}{
		{"missing name", func(i *CustomerInfo) { i.Name = "" }, "name"},
		{"missing email", func(i *CustomerInfo) { i.Email = "" }, "email"},
		{"malformed email", func(i *CustomerInfo) { i.Email = "not-an-email" }, "email"},
		{"short phone", func(i *CustomerInfo) { i.Phone = "080" }, "phone"},
		{"missing street", func(i *CustomerInfo) { i.Street = "" }, "street"},
		{"missing city", func(i *CustomerInfo) { i.City = "" }, "city"},
		{"missing state", func(i *CustomerInfo) { i.State = "" }, "state"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			session := NewSession()
			info := validInfo()
			tc.mutate(&info)

			err := session.SubmitInfo(info, false)
			require.Error(t, err)

			appErr := pkgerrors.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
			assert.Contains(t, appErr.Details(), tc.field)
			assert.Equal(t, StepInfo, session.Step)
		})
	}
}

func TestSubmitInfoAdvancesToMeasurementsForBespoke(t *testing.T) {
	session := NewSession()
	require.NoError(t, session.SubmitInfo(validInfo(), true))

	assert.Equal(t, StepMeasurements, session.Step)
	assert.True(t, session.HasBespoke)
	require.NotNil(t, session.Info)
	assert.Equal(t, "Ada Obi", session.Info.Name)
}

func TestSubmitInfoSkipsMeasurementsForStockOnly(t *testing.T) {
	session := NewSession()
	require.NoError(t, session.SubmitInfo(validInfo(), false))

	assert.Equal(t, StepConfirm, session.Step)
	assert.True(t, session.ReadyToSubmit())
}

func TestSubmitMeasurementsAdvancesToConfirm(t *testing.T) {
	session := NewSession()
	require.NoError(t, session.SubmitInfo(validInfo(), true))

	chest := 102.0
	require.NoError(t, session.SubmitMeasurements(types.Measurements{Chest: &chest}))

	assert.Equal(t, StepConfirm, session.Step)
	require.NotNil(t, session.Measurements)
	assert.Equal(t, 102.0, *session.Measurements.Chest)
}

func TestSubmitMeasurementsBlankIsAccepted(t *testing.T) {
	session := NewSession()
	require.NoError(t, session.SubmitInfo(validInfo(), true))

	require.NoError(t, session.SubmitMeasurements(types.Measurements{}))

	assert.Equal(t, StepConfirm, session.Step)
	assert.Nil(t, session.Measurements)
}

func TestSubmitMeasurementsRejectedOutsideMeasurementsStep(t *testing.T) {
	session := NewSession()

	err := session.SubmitMeasurements(types.Measurements{})
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
}

func TestBackAlwaysReturnsToInfo(t *testing.T) {
	session := NewSession()
	require.NoError(t, session.SubmitInfo(validInfo(), true))
	require.NoError(t, session.SubmitMeasurements(types.Measurements{}))
	require.Equal(t, StepConfirm, session.Step)

	session.Back()
	assert.Equal(t, StepInfo, session.Step)

	session.Back()
	assert.Equal(t, StepInfo, session.Step)
}

func TestShippingAddressFromInfo(t *testing.T) {
	info := validInfo()
	info.Street = "  12 Awolowo Road "

	addr := info.ShippingAddress()
	assert.Equal(t, "12 Awolowo Road", addr.Street)
	assert.Equal(t, "Ikoyi", addr.City)
	assert.Equal(t, "Lagos", addr.State)
	assert.True(t, addr.IsComplete())
}
