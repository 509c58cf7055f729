package types

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ev-charging/api/internal/models"
	appErr "github.com/ev-charging/api/pkg/errors"
)

func ptr[T any](v T) *T { return &v }

func TestUpdateRequestToPatch(t *testing.T) {
	req := UpdateStationRequest{
		Name:     ptr("  Depot  "),
		Location: &LocationPatchInput{Address: ptr(" Dock 7 "), Latitude: ptr(1.5)},
		Status:   ptr(models.StatusOccupied),
	}
	req.Normalize()
	p := req.ToPatch()

	assert.Equal(t, "Depot", *p.Name)
	require.NotNil(t, p.Location)
	assert.Equal(t, "Dock 7", *p.Location.Address)
	assert.Equal(t, 1.5, *p.Location.Latitude)
	assert.Nil(t, p.Location.Longitude)
	assert.Nil(t, p.PowerOutput)
	assert.Nil(t, p.ConnectorType)
	assert.Equal(t, models.StatusOccupied, *p.Status)

	assert.True(t, (&UpdateStationRequest{}).ToPatch().IsEmpty())
}

func TestCreateRequestToStation(t *testing.T) {
	req := CreateStationRequest{
		Name:          " Alex ",
		Location:      LocationInput{Latitude: ptr(0.0), Longitude: ptr(-0.1), Address: " Here "},
		PowerOutput:   ptr(0.0),
		ConnectorType: models.ConnectorType2,
	}
	req.Normalize()
	s := req.ToStation()
	assert.Equal(t, models.Station{
		Name:          "Alex",
		Location:      models.Location{Latitude: 0, Longitude: -0.1, Address: "Here"},
		PowerOutput:   0,
		ConnectorType: models.ConnectorType2,
	}, s)
}

func TestFromError(t *testing.T) {
	status, body := FromError(appErr.Invalid(appErr.FieldError{Field: "name", Message: "is required"}), false)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Len(t, body.Errors, 1)
	assert.Nil(t, body.Error)

	status, body = FromError(appErr.New(appErr.CodeNotFound, "Charging station not found"), false)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Charging station not found", body.Message)

	status, body = FromError(errors.New("socket closed"), false)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, MsgServerError, body.Message)
	assert.Equal(t, "socket closed", body.Error)

	_, body = FromError(errors.New("socket closed"), true)
	assert.Equal(t, struct{}{}, body.Error)
}
