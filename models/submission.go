package models

import "time"

// Submission represents the submissions table: one vehicle or module drop-off.
type Submission struct {
	ID                      int64      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ShopName                *string    `gorm:"column:shop_name" json:"shopName"`
	PhoneNumber             *string    `gorm:"column:phone_number" json:"phoneNumber"`
	DropOffType             *string    `gorm:"column:drop_off_type" json:"dropOffType"`
	VehicleYear             *int       `gorm:"column:vehicle_year" json:"vehicleYear"`
	VehicleMake             *string    `gorm:"column:vehicle_make" json:"vehicleMake"`
	VehicleModel            *string    `gorm:"column:vehicle_model" json:"vehicleModel"`
	VehicleIssueDescription *string    `gorm:"column:vehicle_issue_description" json:"vehicleIssueDescription"`
	ModuleCount             *int       `gorm:"column:module_count" json:"moduleCount"`
	SingleStageCount        *int       `gorm:"column:single_stage_count" json:"singleStageCount"`
	DualStageCount          *int       `gorm:"column:dual_stage_count" json:"dualStageCount"`
	ThreeStageCount         *int       `gorm:"column:three_stage_count" json:"threeStageCount"`
	BuckleCount             *int       `gorm:"column:buckle_count" json:"buckleCount"`
	IsDone                  bool       `gorm:"column:is_done" json:"isDone"`
	IsPrinted               bool       `gorm:"column:is_printed" json:"isPrinted"`
	SubmittedAt             time.Time  `gorm:"column:submitted_at" json:"submittedAt"`
	DoneAt                  *time.Time `gorm:"column:done_at" json:"doneAt"`
	PrintedAt               *time.Time `gorm:"column:printed_at" json:"printedAt"`
}

// TableName specifies the table for Submission.
func (Submission) TableName() string {
	return "submissions"
}

// StatusUpdate is the body of POST /api/submissions/:id/status.
// A nil field is left untouched.
type StatusUpdate struct {
	IsDone    *bool `json:"isDone"`
	IsPrinted *bool `json:"isPrinted"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u StatusUpdate) IsEmpty() bool {
	return u.IsDone == nil && u.IsPrinted == nil
}
