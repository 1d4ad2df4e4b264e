package models

import "time"

// ServiceType is one entry in a contractor's configured service list.
type ServiceType struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Duration int    `bson:"duration" json:"duration"` // minutes
}

// WidgetSettings holds the per-contractor configuration that drives the
// embedded booking widget.
type WidgetSettings struct {
	ContractorID   string        `bson:"contractorId" json:"contractorId"`
	CompanyName    string        `bson:"companyName" json:"companyName"`
	Services       []ServiceType `bson:"services" json:"services"`
	MaxAdvanceDays int           `bson:"maxAdvanceDays" json:"maxAdvanceDays"`
	RequirePhone   bool          `bson:"requirePhone" json:"requirePhone"`
	RequireAddress bool          `bson:"requireAddress" json:"requireAddress"`
	PrimaryColor   string        `bson:"primaryColor,omitempty" json:"primaryColor,omitempty"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
}
