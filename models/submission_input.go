package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidPayload is returned when the intake body is not a JSON object.
var ErrInvalidPayload = errors.New("request body must be a JSON object")

// SubmissionInput carries the caller-supplied fields of a new submission.
// Every field is optional; anything absent or unreadable is stored as NULL.
type SubmissionInput struct {
	ShopName                *string
	PhoneNumber             *string
	DropOffType             *string
	VehicleYear             *int
	VehicleMake             *string
	VehicleModel            *string
	VehicleIssueDescription *string
	ModuleCount             *int
	SingleStageCount        *int
	DualStageCount          *int
	ThreeStageCount         *int
	BuckleCount             *int
}

// UnmarshalJSON decodes each field on its own so one malformed value does
// not reject the whole form. The intake form names the customer
// "customerName"; it is stored as the shop name.
func (in *SubmissionInput) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return ErrInvalidPayload
	}

	*in = SubmissionInput{
		ShopName:                lenientString(raw["customerName"]),
		PhoneNumber:             lenientString(raw["phoneNumber"]),
		DropOffType:             lenientString(raw["dropOffType"]),
		VehicleYear:             lenientInt(raw["vehicleYear"]),
		VehicleMake:             lenientString(raw["vehicleMake"]),
		VehicleModel:            lenientString(raw["vehicleModel"]),
		VehicleIssueDescription: lenientString(raw["vehicleIssueDescription"]),
		ModuleCount:             lenientInt(raw["moduleCount"]),
		SingleStageCount:        lenientInt(raw["singleStageCount"]),
		DualStageCount:          lenientInt(raw["dualStageCount"]),
		ThreeStageCount:         lenientInt(raw["threeStageCount"]),
		BuckleCount:             lenientInt(raw["buckleCount"]),
	}
	if in.ShopName == nil {
		in.ShopName = lenientString(raw["shopName"])
	}
	return nil
}

// ToSubmission maps the input onto a fresh, not-yet-stored row.
func (in SubmissionInput) ToSubmission() Submission {
	return Submission{
		ShopName:                in.ShopName,
		PhoneNumber:             in.PhoneNumber,
		DropOffType:             in.DropOffType,
		VehicleYear:             in.VehicleYear,
		VehicleMake:             in.VehicleMake,
		VehicleModel:            in.VehicleModel,
		VehicleIssueDescription: in.VehicleIssueDescription,
		ModuleCount:             in.ModuleCount,
		SingleStageCount:        in.SingleStageCount,
		DualStageCount:          in.DualStageCount,
		ThreeStageCount:         in.ThreeStageCount,
		BuckleCount:             in.BuckleCount,
	}
}

// lenientString accepts a JSON string or number. Empty strings and
// anything else become nil.
func lenientString(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil
		}
		return &s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		s = n.String()
		return &s
	}
	return nil
}

// lenientInt accepts an integral JSON number or a string holding one.
func lenientInt(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	var text string
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		text = n.String()
	} else if err := json.Unmarshal(raw, &text); err == nil {
		text = strings.TrimSpace(text)
	} else {
		return nil
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return fitInt32(float64(n))
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) {
		return nil
	}
	return fitInt32(f)
}

// fitInt32 keeps values that fit the INT columns; anything wider is NULL.
func fitInt32(f float64) *int {
	if f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}
	v := int(f)
	return &v
}
