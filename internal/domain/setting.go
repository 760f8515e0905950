package domain

import "time"

// SettingCautionPercentage is the settings key holding the deposit
// percentage applied to reservations when no explicit deposit is supplied.
const SettingCautionPercentage = "caution_percentage"

type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedOn time.Time `json:"updated_on"`
}
