package model

import "github.com/haierkeys/portfolio-dash/pkg/timex"

const TableNamePreference = "preference"

// Preference mapped from table <preference>
type Preference struct {
	Key       string     `gorm:"column:pref_key;primaryKey" json:"key" form:"key"`
	Value     string     `gorm:"column:value;not null;default:''" json:"value" form:"value"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Preference's table name
func (*Preference) TableName() string {
	return TableNamePreference
}
